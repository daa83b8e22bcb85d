package ethereum

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"
)

const noahABIJSON = `[
{"type":"function","name":"buildArk","inputs":[{"name":"_beneficiary","type":"address"},{"name":"_deadlineDuration","type":"uint256"},{"name":"_tokens","type":"address[]"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"pingArk","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"getArk","inputs":[{"name":"user","type":"address"}],"outputs":[{"name":"beneficiary","type":"address"},{"name":"deadline","type":"uint256"},{"name":"deadlineDuration","type":"uint256"},{"name":"tokens","type":"address[]"}],"stateMutability":"view"},
{"type":"function","name":"addPassengers","inputs":[{"name":"_newPassengers","type":"address[]"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"removePassenger","inputs":[{"name":"_passengerToRemove","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"updateDeadlineDuration","inputs":[{"name":"_newDuration","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"flood","inputs":[{"name":"_user","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
{"type":"function","name":"destroyArk","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
{"type":"event","name":"ArkBuilt","inputs":[{"name":"user","type":"address","indexed":true},{"name":"beneficiary","type":"address","indexed":true},{"name":"deadline","type":"uint256","indexed":false}]},
{"type":"event","name":"ArkPinged","inputs":[{"name":"user","type":"address","indexed":true},{"name":"newDeadline","type":"uint256","indexed":false}]},
{"type":"event","name":"FloodTriggered","inputs":[{"name":"user","type":"address","indexed":true},{"name":"beneficiary","type":"address","indexed":true}]},
{"type":"event","name":"PassengersAdded","inputs":[{"name":"user","type":"address","indexed":true},{"name":"newPassengers","type":"address[]","indexed":false}]},
{"type":"event","name":"PassengerRemoved","inputs":[{"name":"user","type":"address","indexed":true},{"name":"passenger","type":"address","indexed":false}]},
{"type":"event","name":"DeadlineUpdated","inputs":[{"name":"user","type":"address","indexed":true},{"name":"newDuration","type":"uint256","indexed":false},{"name":"newDeadline","type":"uint256","indexed":false}]},
{"type":"event","name":"ArkDestroyed","inputs":[{"name":"user","type":"address","indexed":true}]}
]`

const erc20ABIJSON = `[
{"type":"function","name":"balanceOf","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
{"type":"function","name":"symbol","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
{"type":"function","name":"decimals","inputs":[],"outputs":[{"name":"","type":"uint8"}],"stateMutability":"view"},
{"type":"function","name":"allowance","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
{"type":"function","name":"approve","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"}
]`

var (
	noahABI  = mustParseABI(noahABIJSON)
	erc20ABI = mustParseABI(erc20ABIJSON)
)

var (
	// ArkBuilt(address indexed user, address indexed beneficiary, uint256 deadline)
	arkBuiltEventSignature = crypto.Keccak256Hash([]byte("ArkBuilt(address,address,uint256)"))

	// ArkPinged(address indexed user, uint256 newDeadline)
	arkPingedEventSignature = crypto.Keccak256Hash([]byte("ArkPinged(address,uint256)"))

	// FloodTriggered(address indexed user, address indexed beneficiary)
	floodTriggeredEventSignature = crypto.Keccak256Hash([]byte("FloodTriggered(address,address)"))

	// PassengersAdded(address indexed user, address[] newPassengers)
	passengersAddedEventSignature = crypto.Keccak256Hash([]byte("PassengersAdded(address,address[])"))

	// PassengerRemoved(address indexed user, address passenger)
	passengerRemovedEventSignature = crypto.Keccak256Hash([]byte("PassengerRemoved(address,address)"))

	// DeadlineUpdated(address indexed user, uint256 newDuration, uint256 newDeadline)
	deadlineUpdatedEventSignature = crypto.Keccak256Hash([]byte("DeadlineUpdated(address,uint256,uint256)"))

	// ArkDestroyed(address indexed user)
	arkDestroyedEventSignature = crypto.Keccak256Hash([]byte("ArkDestroyed(address)"))
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic("invalid embedded ABI: " + err.Error())
	}
	return parsed
}
