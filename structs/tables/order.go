package tables

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const OrderStatusPending = "pending"

// Order line items are not modeled
type Order struct {
	bun.BaseModel `bun:"table:orders,alias:o"`
	ID            int64           `bun:"id,pk,autoincrement" json:"id"`
	UserID        int64           `bun:"user_id,notnull" json:"user_id"`
	TotalAmount   decimal.Decimal `bun:"total_amount,type:numeric(12,2),notnull" json:"total_amount"`
	Status        string          `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt     time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt     time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (o *Order) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	touchTimestamps(query, &o.CreatedAt, &o.UpdatedAt)
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}
