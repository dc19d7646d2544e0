package tables

import "time"

type SampleRequest struct {
	tableName struct{}  `bun:"table:sample_requests,alias:sr"`
	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull,default:''" json:"name"`
	Company   string    `bun:"company,notnull,default:''" json:"company"`
	Email     string    `bun:"email,notnull,default:''" json:"email"`
	Phone     string    `bun:"phone,notnull,default:''" json:"phone"`
	Product   string    `bun:"product,notnull,default:''" json:"product"`
	Quantity  string    `bun:"quantity,notnull,default:''" json:"quantity"`
	Notes     string    `bun:"notes,notnull,default:''" json:"notes"`
	Status    string    `bun:"status,notnull,default:'requested'" json:"status"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
