// Package bindings holds the JSON messages understood by the users contract that the testsuite deploys.
package bindings

// InstantiateMsg is the contract's init payload
type InstantiateMsg struct {
	Owner string   `json:"owner"`
	Users []string `json:"users"`
}

func NewInstantiateMsg(owner string) InstantiateMsg {
	return InstantiateMsg{
		Owner: owner,
		Users: []string{},
	}
}

type UserArg struct {
	User string `json:"user"`
}

// Exactly one field should be set
type ExecuteMsg struct {
	AddUser    *UserArg `json:"add_user,omitempty"`
	RemoveUser *UserArg `json:"remove_user,omitempty"`
}

type EmptyArg struct{}

// Exactly one field should be set
type QueryMsg struct {
	GetUsers *EmptyArg `json:"get_users,omitempty"`
	GetUser  *UserArg  `json:"get_user,omitempty"`
}

func NewGetUsersQuery() QueryMsg {
	return QueryMsg{GetUsers: &EmptyArg{}}
}

func NewGetUserQuery(user string) QueryMsg {
	return QueryMsg{GetUser: &UserArg{User: user}}
}

type UsersResponse struct {
	Users []string `json:"users"`
}

type ExistResponse struct {
	Exist bool `json:"exist"`
}
