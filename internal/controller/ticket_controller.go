package controller

import (
	"codelearn_backend/internal/model"
	"codelearn_backend/internal/service"
	"codelearn_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type TicketController struct {
	TicketService *service.TicketService
}

func NewTicketController(ticketService *service.TicketService) *TicketController {
	return &TicketController{TicketService: ticketService}
}

func isAdminRole(role model.UserRole) bool {
	return role == model.RoleAdmin || role == model.RoleSuperAdmin
}

func ticketID(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid ticket id")
		return 0, false
	}
	return uint(id), true
}

// CreateTicket godoc
// @Summary 创建支持工单
// @Tags 工单
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateTicketRequest true "主题与首条消息"
// @Success 201 {object} util.Response{data=model.SupportTicket}
// @Router /api/tickets [post]
func (c *TicketController) CreateTicket(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CreateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ticket, err := c.TicketService.CreateTicket(claims.UserID, &req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, ticket)
}

// ListMyTickets godoc
// @Summary 我的工单
// @Tags 工单
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.SupportTicket}
// @Router /api/tickets [get]
func (c *TicketController) ListMyTickets(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	tickets, err := c.TicketService.ListMyTickets(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tickets)
}

// GetTicket godoc
// @Summary 工单详情（含消息）
// @Tags 工单
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工单 ID"
// @Success 200 {object} util.Response{data=model.SupportTicket}
// @Failure 404 {object} util.Response
// @Router /api/tickets/{id} [get]
func (c *TicketController) GetTicket(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := ticketID(ctx)
	if !ok {
		return
	}

	ticket, err := c.TicketService.GetTicket(id, claims.UserID, isAdminRole(claims.Role))
	if err != nil {
		if errors.Is(err, util.ErrTicketNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, ticket)
}

// AddMessage godoc
// @Summary 回复工单
// @Description 已关闭的工单学员不能回复；管理员回复会重新打开
// @Tags 工单
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工单 ID"
// @Param   body body service.TicketMessageRequest true "消息内容"
// @Success 200 {object} util.Response{data=model.SupportTicket}
// @Router /api/tickets/{id}/messages [post]
func (c *TicketController) AddMessage(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := ticketID(ctx)
	if !ok {
		return
	}

	var req service.TicketMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	ticket, err := c.TicketService.AddMessage(id, claims.UserID, isAdminRole(claims.Role), &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTicketNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTicketClosed):
			util.Conflict(ctx, "工单已关闭")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, ticket)
}

// CloseTicket godoc
// @Summary 关闭工单
// @Tags 工单
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "工单 ID"
// @Success 200 {object} util.Response
// @Router /api/tickets/{id}/close [post]
func (c *TicketController) CloseTicket(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	id, ok := ticketID(ctx)
	if !ok {
		return
	}

	if err := c.TicketService.CloseTicket(id, claims.UserID, isAdminRole(claims.Role)); err != nil {
		if errors.Is(err, util.ErrTicketNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// ListAllTickets godoc
// @Summary 工单列表（管理端）
// @Tags 管理
// @Produce  json
// @Security BearerAuth
// @Param   status query string false "open 或 closed"
// @Success 200 {object} util.Response{data=[]model.SupportTicket}
// @Router /api/admin/tickets [get]
func (c *TicketController) ListAllTickets(ctx *gin.Context) {
	tickets, err := c.TicketService.ListAllTickets(ctx.Query("status"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, tickets)
}
