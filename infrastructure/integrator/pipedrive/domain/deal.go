package domain

import (
	"bytes"
	"encoding/json"
	"time"
)

const (
	DealStatusOpen          = "open"
	DealStatusWon           = "won"
	DealStatusLost          = "lost"
	DealStatusAllNotDeleted = "all_not_deleted"
)

// dealTimeLayout é o formato de data/hora usado pela API do Pipedrive
const dealTimeLayout = "2006-01-02 15:04:05"

// Deal é um negócio retornado pela API do Pipedrive
type Deal struct {
	ID        int64   `json:"id"`
	Title     string  `json:"title"`
	Value     float64 `json:"value"`
	Currency  string  `json:"currency"`
	Status    string  `json:"status"`
	WonTime   *string `json:"won_time"`
	LostTime  *string `json:"lost_time"`
	CloseTime *string `json:"close_time"`
	AddTime   string  `json:"add_time"`
	OwnerID   OwnerID `json:"user_id"`
}

// SaleDate resolve a data da venda: won_time, senão close_time, senão o
// fallback informado. Só a parte de data importa.
func (d Deal) SaleDate(fallback time.Time) time.Time {
	for _, candidate := range []*string{d.WonTime, d.CloseTime} {
		if candidate == nil || *candidate == "" {
			continue
		}
		if parsed, err := time.Parse(dealTimeLayout, *candidate); err == nil {
			return parsed
		}
		// Alguns endpoints retornam somente a data
		if parsed, err := time.Parse(time.DateOnly, *candidate); err == nil {
			return parsed
		}
	}
	return fallback
}

// OwnerID normaliza o dono do deal. A API do Pipedrive ora devolve o campo
// user_id como número puro, ora como objeto aninhado {"id": 123, ...};
// este tipo aceita as duas formas e expõe um único id numérico.
type OwnerID int64

func (o *OwnerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = 0
		return nil
	}

	if data[0] == '{' {
		var nested struct {
			ID int64 `json:"id"`
		}
		if err := json.Unmarshal(data, &nested); err != nil {
			return err
		}
		*o = OwnerID(nested.ID)
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return err
	}
	*o = OwnerID(id)
	return nil
}

func (o OwnerID) Int64() int64 {
	return int64(o)
}
