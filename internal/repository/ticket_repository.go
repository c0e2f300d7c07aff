package repository

import (
	"codelearn_backend/internal/model"

	"gorm.io/gorm"
)

type TicketRepository struct {
	DB *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{DB: db}
}

func (r *TicketRepository) Create(ticket *model.SupportTicket) error {
	return r.DB.Create(ticket).Error
}

func (r *TicketRepository) FindByID(id uint) (*model.SupportTicket, error) {
	var ticket model.SupportTicket
	err := r.DB.
		Preload("Messages", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&ticket, id).Error
	return &ticket, err
}

func (r *TicketRepository) FindByUser(userID uint) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) FindAll(status string) ([]model.SupportTicket, error) {
	var tickets []model.SupportTicket
	query := r.DB.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&tickets).Error
	return tickets, err
}

func (r *TicketRepository) AddMessage(message *model.TicketMessage) error {
	return r.DB.Create(message).Error
}

func (r *TicketRepository) UpdateStatus(id uint, status model.TicketStatus) error {
	return r.DB.Model(&model.SupportTicket{}).
		Where("id = ?", id).
		Update("status", status).
		Error
}
