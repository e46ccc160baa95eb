package lcd

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testChainId = "bombay-12"
	testAddress = "terra1x46rqay4d3cssq8gxxvqz8xt6nwlz4td20k38v"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *LcdClient {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewLcdClient(server.URL+"/", testChainId, 5*time.Second)
}

func TestNewLcdClient_TrimsTrailingSlashAndDefaultsTimeout(t *testing.T) {
	client := NewLcdClient("http://localhost:1317/", testChainId, 0)
	require.Equal(t, "http://localhost:1317", client.GetURL())
	require.Equal(t, testChainId, client.GetChainID())
	require.Equal(t, DefaultRequestTimeout, client.timeout)
}

func TestGetAccountInfo(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/auth/accounts/"+testAddress, r.URL.Path)
		_, _ = io.WriteString(w, `{
			"height": "1234",
			"result": {
				"type": "core/Account",
				"value": {"address": "`+testAddress+`", "account_number": "7", "sequence": "3"}
			}
		}`)
	})

	accountInfo, err := client.GetAccountInfo(context.Background(), testAddress)
	require.NoError(t, err)
	require.Equal(t, testAddress, accountInfo.Address)
	require.Equal(t, uint64(7), accountInfo.AccountNumber)
	require.Equal(t, uint64(3), accountInfo.Sequence)
}

func TestBroadcastTx(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/txs", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Tx struct {
				Msg []struct {
					Type  string            `json:"type"`
					Value map[string]string `json:"value"`
				} `json:"msg"`
				Fee struct {
					Gas string `json:"gas"`
				} `json:"fee"`
			} `json:"tx"`
			Mode string `json:"mode"`
		}
		reqBody, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(reqBody, &body))
		require.Equal(t, "block", body.Mode)
		require.Len(t, body.Tx.Msg, 1)
		require.Equal(t, "wasm/MsgStoreCode", body.Tx.Msg[0].Type)
		require.Equal(t, testAddress, body.Tx.Msg[0].Value["sender"])
		require.Equal(t, "AAEC", body.Tx.Msg[0].Value["wasm_byte_code"])
		require.Equal(t, "2000000", body.Tx.Fee.Gas)

		_, _ = io.WriteString(w, `{
			"height": "100",
			"txhash": "ABCDEF",
			"raw_log": "[]",
			"gas_wanted": "2000000",
			"gas_used": "1500000",
			"logs": [{
				"msg_index": 0,
				"log": "",
				"events": [
					{"type": "message", "attributes": [{"key": "action", "value": "store_code"}]},
					{"type": "store_code", "attributes": [{"key": "sender", "value": "`+testAddress+`"}, {"key": "code_id", "value": "42"}]}
				]
			}]
		}`)
	})

	tx := StdTx{
		Msg:        WrapMsgs([]Msg{NewMsgStoreCode(testAddress, "AAEC")}),
		Fee:        NewStdFee(2000000, NewCoin("uusd", 1000000)),
		Signatures: []StdSignature{},
	}
	result, err := client.BroadcastTx(context.Background(), tx, BroadcastModeBlock)
	require.NoError(t, err)
	require.False(t, result.IsTxError())
	require.Equal(t, "ABCDEF", result.TxHash)
	require.Equal(t, "100", result.Height)
	require.Len(t, result.Logs, 1)
	require.Equal(t, []string{"42"}, result.Logs[0].EventsByType()["store_code"]["code_id"])
}

func TestBroadcastTx_ReportsTxFailureInResult(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"txhash": "FAILED", "code": 11, "codespace": "sdk", "raw_log": "out of gas"}`)
	})

	result, err := client.BroadcastTx(context.Background(), StdTx{}, BroadcastModeBlock)
	require.NoError(t, err)
	require.True(t, result.IsTxError())
	require.Equal(t, uint32(11), result.Code)
	require.Equal(t, "sdk", result.Codespace)
	require.Equal(t, "out of gas", result.RawLog)
}

func TestQueryContract(t *testing.T) {
	contractAddress := "terra1contract"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wasm/contracts/"+contractAddress+"/store", r.URL.Path)
		require.JSONEq(t, `{"get_users": {}}`, r.URL.Query().Get("query_msg"))
		_, _ = io.WriteString(w, `{"height": "5", "result": {"users": ["terra1a", "terra1b"]}}`)
	})

	var result struct {
		Users []string `json:"users"`
	}
	query := map[string]interface{}{"get_users": struct{}{}}
	require.NoError(t, client.QueryContract(context.Background(), contractAddress, query, &result))
	require.Equal(t, []string{"terra1a", "terra1b"}, result.Users)
}

func TestNonSuccessStatusIsAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error": "account not found"}`)
	})

	_, err := client.GetAccountInfo(context.Background(), testAddress)
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
	require.Contains(t, err.Error(), "account not found")
}

func TestCanceledContextSendsNoRequest(t *testing.T) {
	numRequests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		numRequests++
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.GetAccountInfo(ctx, testAddress)
	require.Error(t, err)
	require.Equal(t, 0, numRequests)
}
