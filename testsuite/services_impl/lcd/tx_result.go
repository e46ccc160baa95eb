package lcd

import (
	"fmt"
)

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

type TxLog struct {
	MsgIndex int     `json:"msg_index"`
	Log      string  `json:"log"`
	Events   []Event `json:"events"`
}

// EventsByType groups attribute values as eventType -> attributeKey -> values, in log order
func (txLog TxLog) EventsByType() map[string]map[string][]string {
	result := map[string]map[string][]string{}
	for _, event := range txLog.Events {
		attributes, found := result[event.Type]
		if !found {
			attributes = map[string][]string{}
			result[event.Type] = attributes
		}
		for _, attribute := range event.Attributes {
			attributes[attribute.Key] = append(attributes[attribute.Key], attribute.Value)
		}
	}
	return result
}

// TxResult is what the LCD returns for a transaction broadcast
type TxResult struct {
	Height    string  `json:"height"`
	TxHash    string  `json:"txhash"`
	RawLog    string  `json:"raw_log"`
	Logs      []TxLog `json:"logs"`
	GasWanted string  `json:"gas_wanted"`
	GasUsed   string  `json:"gas_used"`
	Code      uint32  `json:"code"`
	Codespace string  `json:"codespace"`
}

// IsTxError is true when the node accepted the broadcast but the transaction failed
func (result TxResult) IsTxError() bool {
	return result.Code != 0
}

// TxError is a transaction-level failure reported by the node
type TxError struct {
	TxHash    string
	Code      uint32
	Codespace string
	RawLog    string
}

func NewTxError(result *TxResult) *TxError {
	return &TxError{
		TxHash:    result.TxHash,
		Code:      result.Code,
		Codespace: result.Codespace,
		RawLog:    result.RawLog,
	}
}

func (err *TxError) Error() string {
	return fmt.Sprintf(
		"Transaction failed!\ncode: %v\ncodespace: %v\nraw_log: %v",
		err.Code,
		err.Codespace,
		err.RawLog,
	)
}
