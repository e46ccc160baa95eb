/*
 * Copyright (c) 2021 - present Kurtosis Technologies LLC.
 * All Rights Reserved.
 */

package lcd

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/palantir/stacktrace"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"
)

const (
	accountsPathFmt      = "/auth/accounts/%v"
	txsPath              = "/txs"
	contractStorePathFmt = "/wasm/contracts/%v/store?query_msg=%v"

	jsonContentType = "application/json"

	userAgent = "terra-smart-contract-sample-testsuite"

	DefaultRequestTimeout = 30 * time.Second
)

type BroadcastMode string

const (
	// The LCD only answers once the tx is in a block, so the result carries the execution logs
	BroadcastModeBlock BroadcastMode = "block"
	BroadcastModeSync  BroadcastMode = "sync"
	BroadcastModeAsync BroadcastMode = "async"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type AccountInfo struct {
	Address       string `json:"address"`
	AccountNumber uint64 `json:"account_number,string"`
	Sequence      uint64 `json:"sequence,string"`
}

type accountResponse struct {
	Height string `json:"height"`
	Result struct {
		Type  string      `json:"type"`
		Value AccountInfo `json:"value"`
	} `json:"result"`
}

type broadcastRequest struct {
	Tx   StdTx         `json:"tx"`
	Mode BroadcastMode `json:"mode"`
}

type contractQueryResponse struct {
	Height string              `json:"height"`
	Result jsoniter.RawMessage `json:"result"`
}

// LcdClient talks to a Terra light-client daemon (the legacy REST API)
type LcdClient struct {
	url     string
	chainId string
	timeout time.Duration

	httpClient *fasthttp.Client
}

func NewLcdClient(lcdUrl string, chainId string, timeout time.Duration) *LcdClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &LcdClient{
		url:     strings.TrimRight(lcdUrl, "/"),
		chainId: chainId,
		timeout: timeout,
		httpClient: &fasthttp.Client{
			Name:         userAgent,
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
	}
}

func (client LcdClient) GetURL() string {
	return client.url
}

func (client LcdClient) GetChainID() string {
	return client.chainId
}

func (client LcdClient) GetAccountInfo(ctx context.Context, address string) (*AccountInfo, error) {
	respBody, err := client.doRequest(ctx, fasthttp.MethodGet, fmt.Sprintf(accountsPathFmt, address), nil)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred getting the account info for address '%v'", address)
	}
	var resp accountResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred deserializing the account info response for address '%v'", address)
	}
	return &resp.Result.Value, nil
}

func (client LcdClient) BroadcastTx(ctx context.Context, tx StdTx, mode BroadcastMode) (*TxResult, error) {
	reqBody, err := json.Marshal(broadcastRequest{Tx: tx, Mode: mode})
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred serializing the broadcast request")
	}
	respBody, err := client.doRequest(ctx, fasthttp.MethodPost, txsPath, reqBody)
	if err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred broadcasting the transaction")
	}
	result := &TxResult{}
	if err := json.Unmarshal(respBody, result); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred deserializing the broadcast response")
	}
	return result, nil
}

// QueryContract runs a smart query against the contract and deserializes the query result into resultObj
func (client LcdClient) QueryContract(ctx context.Context, contractAddress string, queryMsg interface{}, resultObj interface{}) error {
	queryBytes, err := json.Marshal(queryMsg)
	if err != nil {
		return stacktrace.Propagate(err, "An error occurred serializing the query for contract '%v'", contractAddress)
	}
	path := fmt.Sprintf(contractStorePathFmt, contractAddress, url.QueryEscape(string(queryBytes)))
	respBody, err := client.doRequest(ctx, fasthttp.MethodGet, path, nil)
	if err != nil {
		return stacktrace.Propagate(err, "An error occurred querying contract '%v'", contractAddress)
	}
	var resp contractQueryResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return stacktrace.Propagate(err, "An error occurred deserializing the query response from contract '%v'", contractAddress)
	}
	if err := json.Unmarshal(resp.Result, resultObj); err != nil {
		return stacktrace.Propagate(err, "An error occurred deserializing the query result '%v' from contract '%v'", string(resp.Result), contractAddress)
	}
	return nil
}

// ========================================================================================================
//                                     Private helper functions
// ========================================================================================================
func (client LcdClient) doRequest(ctx context.Context, method string, path string, body []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, stacktrace.Propagate(err, "Context was done before the '%v %v' request was sent", method, path)
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.url + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, jsonContentType)
	if body != nil {
		req.Header.SetContentType(jsonContentType)
		req.SetBody(body)
	}

	deadline := time.Now().Add(client.timeout)
	if ctxDeadline, found := ctx.Deadline(); found && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	logrus.Debugf("Sending LCD request '%v %v'", method, path)
	if err := client.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, stacktrace.Propagate(err, "An error occurred sending the '%v %v' request to the LCD at '%v'", method, path, client.url)
	}

	// The response body is only valid until the response is released
	respBody := append([]byte(nil), resp.Body()...)
	statusCode := resp.StatusCode()
	if statusCode < fasthttp.StatusOK || statusCode >= fasthttp.StatusMultipleChoices {
		return nil, stacktrace.NewError(
			"The LCD returned status '%v' for request '%v %v': %v",
			statusCode,
			method,
			path,
			string(respBody))
	}
	return respBody, nil
}
