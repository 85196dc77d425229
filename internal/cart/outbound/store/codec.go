package store

import (
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/shandysiswandi/gomart/internal/cart/entity"
)

type lineRecord struct {
	ProductID string `msgpack:"pid"`
	Title     string `msgpack:"t"`
	Quantity  int    `msgpack:"q"`
	Price     string `msgpack:"p"`
	AddedAt   int64  `msgpack:"at"`
}

type confirmedRecord struct {
	Lines       []lineRecord `msgpack:"l"`
	ConfirmedAt int64        `msgpack:"at"`
	AddressID   int64        `msgpack:"aid,omitempty"`
}

type cartRecord struct {
	SessionID string           `msgpack:"sid"`
	Lines     []lineRecord     `msgpack:"l"`
	Confirmed *confirmedRecord `msgpack:"c,omitempty"`
	Status    string           `msgpack:"s"`
	UpdatedAt int64            `msgpack:"u"`
}

func toLineRecords(lines []entity.Line) []lineRecord {
	return lo.Map(lines, func(l entity.Line, _ int) lineRecord {
		return lineRecord{
			ProductID: l.ProductID,
			Title:     l.Title,
			Quantity:  l.Quantity,
			Price:     l.Price.String(),
			AddedAt:   l.AddedAt.UnixMilli(),
		}
	})
}

func fromLineRecords(rows []lineRecord) ([]entity.Line, error) {
	lines := make([]entity.Line, 0, len(rows))
	for _, r := range rows {
		price, err := decimal.NewFromString(r.Price)
		if err != nil {
			return nil, err
		}
		lines = append(lines, entity.Line{
			ProductID: r.ProductID,
			Title:     r.Title,
			Quantity:  r.Quantity,
			Price:     price,
			AddedAt:   time.UnixMilli(r.AddedAt).UTC(),
		})
	}
	return lines, nil
}

func encode(c *entity.Cart) ([]byte, error) {
	rec := cartRecord{
		SessionID: c.SessionID,
		Lines:     toLineRecords(c.Lines),
		Status:    string(c.Status),
		UpdatedAt: c.UpdatedAt.UnixMilli(),
	}
	if c.Confirmed != nil {
		rec.Confirmed = &confirmedRecord{
			Lines:       toLineRecords(c.Confirmed.Lines),
			ConfirmedAt: c.Confirmed.ConfirmedAt.UnixMilli(),
			AddressID:   c.Confirmed.AddressID,
		}
	}
	return msgpack.Marshal(rec)
}

func decode(raw []byte) (*entity.Cart, error) {
	var rec cartRecord
	if err := msgpack.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}

	lines, err := fromLineRecords(rec.Lines)
	if err != nil {
		return nil, err
	}

	c := &entity.Cart{
		SessionID: rec.SessionID,
		Lines:     lines,
		Status:    entity.Status(rec.Status),
		UpdatedAt: time.UnixMilli(rec.UpdatedAt).UTC(),
	}
	if rec.Confirmed != nil {
		cl, err := fromLineRecords(rec.Confirmed.Lines)
		if err != nil {
			return nil, err
		}
		c.Confirmed = &entity.Confirmed{
			Lines:       cl,
			ConfirmedAt: time.UnixMilli(rec.Confirmed.ConfirmedAt).UTC(),
			AddressID:   rec.Confirmed.AddressID,
		}
	}

	return c, nil
}
