package esplora

// addressStats is the answer of GET /address/:address.
type addressStats struct {
	Address      string   `json:"address"`
	ChainStats   txoStats `json:"chain_stats"`
	MempoolStats txoStats `json:"mempool_stats"`
}

type txoStats struct {
	FundedTxoSum uint64 `json:"funded_txo_sum"`
	SpentTxoSum  uint64 `json:"spent_txo_sum"`
	TxCount      uint64 `json:"tx_count"`
}

// used reports whether the address has any confirmed or unconfirmed history.
func (s addressStats) used() bool {
	return s.ChainStats.TxCount+s.MempoolStats.TxCount > 0
}

// balance is funded minus spent, confirmed and unconfirmed.
func (s addressStats) balance() int64 {
	funded := s.ChainStats.FundedTxoSum + s.MempoolStats.FundedTxoSum
	spent := s.ChainStats.SpentTxoSum + s.MempoolStats.SpentTxoSum
	return int64(funded) - int64(spent)
}

// transaction is an element of GET /address/:address/txs.
type transaction struct {
	TxID   string   `json:"txid"`
	Vin    []input  `json:"vin"`
	Vout   []output `json:"vout"`
	Fee    uint64   `json:"fee"`
	Status txStatus `json:"status"`
}

type input struct {
	Prevout    *output `json:"prevout"`
	IsCoinbase bool    `json:"is_coinbase"`
}

type output struct {
	ScriptPubKeyAddress string `json:"scriptpubkey_address"`
	Value               uint64 `json:"value"`
}

type txStatus struct {
	Confirmed   bool   `json:"confirmed"`
	BlockHeight uint32 `json:"block_height"`
	BlockTime   uint64 `json:"block_time"`
}
