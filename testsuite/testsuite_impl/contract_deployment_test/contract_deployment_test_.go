package contract_deployment_test

import (
	"context"

	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/smart_contracts/bindings"
	"github.com/kurtosis-tech/terra-smart-contract-sample-testsuite/testsuite/networks_impl"
	"github.com/palantir/stacktrace"
	"github.com/sirupsen/logrus"
)

type ContractDeploymentTestConfig struct {
	WasmFilepath string
	// Log every transaction hash and pretty-printed raw log
	Verbose bool
	// After instantiation, query the contract and add its owner as a user
	VerifyContract bool
}

type DeploymentResult struct {
	CodeId            uint64
	ContractAddress   string
	InstantiateTxHash string
}

type ContractDeploymentTest struct {
	network *networks_impl.TerraNetwork
	config  ContractDeploymentTestConfig
}

func NewContractDeploymentTest(network *networks_impl.TerraNetwork, config ContractDeploymentTestConfig) *ContractDeploymentTest {
	return &ContractDeploymentTest{network: network, config: config}
}

func (test ContractDeploymentTest) Run(ctx context.Context) error {
	if _, err := test.Deploy(ctx); err != nil {
		return stacktrace.Propagate(err, "An error occurred deploying the contract")
	}
	return nil
}

// Deploy uploads the contract code and instantiates it with the deployer as owner and no users
func (test ContractDeploymentTest) Deploy(ctx context.Context) (*DeploymentResult, error) {
	deployer, lcdClient, err := test.network.ExecuteRunPhaseInitialization()
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred initializing the LCD client and deployer wallet")
	}
	logrus.Infof("Wallet: %v", deployer.GetAccAddress())

	logrus.Infof("Deploying wasm from '%v'...", test.config.WasmFilepath)
	codeId, err := storeCode(ctx, lcdClient, deployer, test.config.WasmFilepath, test.config.Verbose)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred storing the contract code")
	}
	logrus.Info("Wasm deployed")
	logrus.Infof("CodeId: %v", codeId)

	logrus.Info("Instantiating contract...")
	initMsg := bindings.NewInstantiateMsg(deployer.GetAccAddress())
	result, err := instantiateContract(ctx, lcdClient, deployer, deployer, codeId, initMsg, test.config.Verbose)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred instantiating the contract from code ID '%v'", codeId)
	}
	contractAddress, err := findContractAddress(result)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred finding the address of the instantiated contract")
	}
	logrus.Infof("Contract instantiated: contractAddress=%v", contractAddress)

	if test.config.VerifyContract {
		logrus.Info("Verifying contract...")
		if err := verifyContract(ctx, lcdClient, deployer, contractAddress, test.config.Verbose); err != nil {
			return nil, stacktrace.Propagate(err, "An error occurred verifying contract '%v'", contractAddress)
		}
		logrus.Info("Contract verified")
	}

	return &DeploymentResult{
		CodeId:            codeId,
		ContractAddress:   contractAddress,
		InstantiateTxHash: result.TxHash,
	}, nil
}

// ========================================================================================================
//                                     Private helper functions
// ========================================================================================================
func verifyContract(ctx context.Context, client contractClient, owner txSigner, contractAddress string, verbose bool) error {
	var usersResp bindings.UsersResponse
	if err := client.QueryContract(ctx, contractAddress, bindings.NewGetUsersQuery(), &usersResp); err != nil {
		return stacktrace.Propagate(err, "An error occurred querying the users of a freshly-instantiated contract")
	}
	if len(usersResp.Users) != 0 {
		return stacktrace.NewError("Expected a freshly-instantiated contract to have no users, but got '%v'", usersResp.Users)
	}

	ownerAddress := owner.GetAccAddress()
	logrus.Infof("Adding owner '%v' as a user...", ownerAddress)
	addUserMsg := bindings.ExecuteMsg{AddUser: &bindings.UserArg{User: ownerAddress}}
	if _, err := executeContract(ctx, client, owner, contractAddress, addUserMsg, verbose); err != nil {
		return stacktrace.Propagate(err, "An error occurred adding owner '%v' as a user", ownerAddress)
	}
	logrus.Info("Owner added as a user")

	var existResp bindings.ExistResponse
	if err := client.QueryContract(ctx, contractAddress, bindings.NewGetUserQuery(ownerAddress), &existResp); err != nil {
		return stacktrace.Propagate(err, "An error occurred querying whether owner '%v' is a user", ownerAddress)
	}
	if !existResp.Exist {
		return stacktrace.NewError("Owner '%v' was added as a user, but the contract reports it doesn't exist", ownerAddress)
	}
	return nil
}
