package service

import (
	"codelearn_backend/internal/model"
	"codelearn_backend/internal/repository"
	"codelearn_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type TicketService struct {
	TicketRepo *repository.TicketRepository
}

func NewTicketService(ticketRepo *repository.TicketRepository) *TicketService {
	return &TicketService{TicketRepo: ticketRepo}
}

type CreateTicketRequest struct {
	Subject string `json:"subject" binding:"required,max=255"`
	Body    string `json:"body" binding:"required"`
}

type TicketMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

func (s *TicketService) CreateTicket(userID uint, req *CreateTicketRequest) (*model.SupportTicket, error) {
	ticket := &model.SupportTicket{
		UserID:  userID,
		Subject: req.Subject,
		Status:  model.TicketOpen,
		Messages: []model.TicketMessage{
			{AuthorID: userID, Body: req.Body},
		},
	}
	if err := s.TicketRepo.Create(ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) GetTicket(id uint, userID uint, isAdmin bool) (*model.SupportTicket, error) {
	ticket, err := s.TicketRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTicketNotFound
		}
		return nil, err
	}
	if !isAdmin && ticket.UserID != userID {
		return nil, util.ErrTicketNotFound
	}
	return ticket, nil
}

func (s *TicketService) ListMyTickets(userID uint) ([]model.SupportTicket, error) {
	return s.TicketRepo.FindByUser(userID)
}

func (s *TicketService) ListAllTickets(status string) ([]model.SupportTicket, error) {
	return s.TicketRepo.FindAll(status)
}

// AddMessage 追加一条消息。工单关闭后不再接受学员回复，管理员回复会重新打开。
func (s *TicketService) AddMessage(ticketID, authorID uint, isAdmin bool, req *TicketMessageRequest) (*model.SupportTicket, error) {
	ticket, err := s.GetTicket(ticketID, authorID, isAdmin)
	if err != nil {
		return nil, err
	}

	if ticket.Status == model.TicketClosed {
		if !isAdmin {
			return nil, util.ErrTicketClosed
		}
		if err := s.TicketRepo.UpdateStatus(ticketID, model.TicketOpen); err != nil {
			return nil, err
		}
	}

	message := &model.TicketMessage{
		TicketID:  ticketID,
		AuthorID:  authorID,
		FromAdmin: isAdmin,
		Body:      req.Body,
	}
	if err := s.TicketRepo.AddMessage(message); err != nil {
		return nil, err
	}

	return s.TicketRepo.FindByID(ticketID)
}

func (s *TicketService) CloseTicket(ticketID, userID uint, isAdmin bool) error {
	ticket, err := s.GetTicket(ticketID, userID, isAdmin)
	if err != nil {
		return err
	}
	if ticket.Status == model.TicketClosed {
		return nil
	}
	return s.TicketRepo.UpdateStatus(ticketID, model.TicketClosed)
}
