package model

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

// SupportTicket 学员支持工单
// swagger:model SupportTicket
type SupportTicket struct {
	BaseModel
	UserID  uint         `gorm:"index;not null" json:"userId"`
	Subject string       `gorm:"size:255;not null" json:"subject"`
	Status  TicketStatus `gorm:"size:20;default:'open'" json:"status"`

	Messages []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
}

func (SupportTicket) TableName() string {
	return "support_tickets"
}

// swagger:model TicketMessage
type TicketMessage struct {
	BaseModel
	TicketID  uint   `gorm:"index;not null" json:"ticketId"`
	AuthorID  uint   `gorm:"index;not null" json:"authorId"`
	FromAdmin bool   `gorm:"default:false" json:"fromAdmin"`
	Body      string `gorm:"type:text;not null" json:"body"`
}

func (TicketMessage) TableName() string {
	return "ticket_messages"
}
