package httpapi

import (
	"encoding/hex"
	"encoding/json"

	"golang.org/x/crypto/blake2b"

	"github.com/abdoElHodaky/orderbook-engine/internal/orderbook"
	"github.com/abdoElHodaky/orderbook-engine/internal/quantity"
)

func toOrderDTO(o orderbook.Order) orderDTO {
	return orderDTO{
		ID:            o.ID,
		Side:          string(o.Side),
		Price:         o.Price.String(),
		Submitter:     o.Submitter,
		Ts:            o.Ts,
		Funds:         o.Funds.String(),
		FundsDenom:    o.FundsDenom,
		Proceeds:      o.Proceeds.String(),
		ProceedsDenom: o.ProceedsDenom,
	}
}

func toOrderDTOs(orders []orderbook.Order) []orderDTO {
	out := make([]orderDTO, len(orders))
	for i, o := range orders {
		out[i] = toOrderDTO(o)
	}
	return out
}

func toBookDTO(book orderbook.Book) bookDTO {
	return bookDTO{Bids: toOrderDTOs(book.Bids), Asks: toOrderDTOs(book.Asks)}
}

func toMatchResultDTO(result orderbook.MatchResult) matchResultDTO {
	transfers := make([]transferDTO, len(result.Transfers))
	for i, t := range result.Transfers {
		transfers[i] = transferDTO{To: t.To, Amount: t.Amount.String(), Denom: t.Denom}
	}
	attrs := make([]attributeDTO, len(result.Attributes))
	for i, a := range result.Attributes {
		attrs[i] = attributeDTO{Key: a.Key, Value: a.Value}
	}
	return matchResultDTO{Transfers: transfers, Attributes: attrs}
}

func parseAmount(s string) (quantity.Amount, error) {
	return quantity.FromString(s)
}

// bookETag hashes the canonical encoding of a book snapshot, so two
// requests that observe the same book state always get the same ETag.
func bookETag(book bookDTO) (string, error) {
	b, err := json.Marshal(book)
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return `"` + hex.EncodeToString(sum[:]) + `"`, nil
}
