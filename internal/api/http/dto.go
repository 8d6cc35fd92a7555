package httpapi

// bidRequestDTO is the wire shape for POST /v1/bids.
type bidRequestDTO struct {
	ID        string `json:"id" binding:"required"`
	Price     string `json:"price" binding:"required"`
	Sender    string `json:"sender" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	ArrivalTS int64  `json:"arrival_ts"`
}

// askRequestDTO is the wire shape for POST /v1/asks.
type askRequestDTO struct {
	ID        string `json:"id" binding:"required"`
	Price     string `json:"price" binding:"required"`
	Sender    string `json:"sender" binding:"required"`
	Amount    string `json:"amount" binding:"required"`
	ArrivalTS int64  `json:"arrival_ts"`
}

// matchRequestDTO is the wire shape for POST /v1/match.
type matchRequestDTO struct {
	Sender string `json:"sender" binding:"required"`
}

type orderDTO struct {
	ID            string `json:"id"`
	Side          string `json:"side"`
	Price         string `json:"price"`
	Submitter     string `json:"submitter"`
	Ts            int64  `json:"ts"`
	Funds         string `json:"funds"`
	FundsDenom    string `json:"funds_denom"`
	Proceeds      string `json:"proceeds"`
	ProceedsDenom string `json:"proceeds_denom"`
}

type bookDTO struct {
	Bids []orderDTO `json:"bids"`
	Asks []orderDTO `json:"asks"`
}

type transferDTO struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
	Denom  string `json:"denom"`
}

type attributeDTO struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type matchResultDTO struct {
	Transfers  []transferDTO  `json:"transfers"`
	Attributes []attributeDTO `json:"attributes"`
}

type ingestResultDTO struct {
	Action string `json:"action"`
	ID     string `json:"id"`
}

type errorDTO struct {
	Error string `json:"error"`
}
