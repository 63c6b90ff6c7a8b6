package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/thereayou/studnet/internal/database"
	"github.com/thereayou/studnet/internal/handlers/dto"
	"github.com/thereayou/studnet/internal/middleware"
	"github.com/thereayou/studnet/internal/models"
	"github.com/thereayou/studnet/internal/services"
)

type GroupHandler struct {
	store services.Store
	log   *zap.Logger
}

func NewGroupHandler(store services.Store, logger *zap.Logger) *GroupHandler {
	return &GroupHandler{store: store, log: logger}
}

// List отдаёт все группы с member_count и is_member для вызывающего.
// Членство собирается одним батч-запросом по всем группам списка.
func (h *GroupHandler) List(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	groups, err := h.store.ListGroups(c.Request.Context())
	if err != nil {
		h.log.Error("list groups failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch groups."})
		return
	}

	groupIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		groupIDs = append(groupIDs, g.ID.Hex())
	}

	memberships, err := h.store.ListMembershipsByGroups(c.Request.Context(), groupIDs)
	if err != nil {
		h.log.Error("list memberships failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch groups."})
		return
	}

	memberMap := make(map[string][]string)
	for _, m := range memberships {
		key := m.GroupID.Hex()
		memberMap[key] = append(memberMap[key], m.UserID.Hex())
	}

	summaries := make([]dto.GroupSummaryView, 0, len(groups))
	for i := range groups {
		summaries = append(summaries, dto.NewGroupSummaryView(&groups[i], memberMap[groups[i].ID.Hex()], user.ID))
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.store.GetGroupByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Group not found."})
			return
		}
		h.log.Error("get group failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch group."})
		return
	}

	c.JSON(http.StatusOK, dto.NewGroupView(group))
}

// Create заводит группу и сразу записывает создателя в участники
func (h *GroupHandler) Create(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Complete all required fields."})
		return
	}

	if req.Name == "" || req.Faculty == "" || req.Year == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Complete all required fields."})
		return
	}

	creatorOID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found."})
		return
	}

	group := &models.Group{
		Name:        req.Name,
		Faculty:     req.Faculty,
		Year:        req.Year,
		Course:      req.Course,
		Description: req.Description,
		CreatedBy:   creatorOID,
	}
	if err := h.store.CreateGroup(c.Request.Context(), group); err != nil {
		h.log.Error("create group failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create group."})
		return
	}

	if err := h.store.AddMember(c.Request.Context(), group.ID.Hex(), user.ID); err != nil && !errors.Is(err, database.ErrDuplicateMembership) {
		h.log.Error("create group: enroll creator failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create group."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Group created successfully.",
		"group":   dto.NewGroupView(group),
	})
}

func (h *GroupHandler) Join(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	groupID := c.Param("id")

	if _, err := h.store.GetGroupByID(c.Request.Context(), groupID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Group not found."})
			return
		}
		h.log.Error("join group: lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join group."})
		return
	}

	if err := h.store.AddMember(c.Request.Context(), groupID, user.ID); err != nil {
		if errors.Is(err, database.ErrDuplicateMembership) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Already a member."})
			return
		}
		h.log.Error("join group failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to join group."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Joined group."})
}

// Leave удаляет пару (группа, пользователь); повторный leave — тоже 200
func (h *GroupHandler) Leave(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	if err := h.store.RemoveMember(c.Request.Context(), c.Param("id"), user.ID); err != nil && !errors.Is(err, database.ErrNotFound) {
		h.log.Error("leave group failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to leave group."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left group."})
}

// Delete доступен только создателю и явно каскадирует: сообщения,
// участники, потом сама группа
func (h *GroupHandler) Delete(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)
	groupID := c.Param("id")

	group, err := h.store.GetGroupByID(c.Request.Context(), groupID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Group not found."})
			return
		}
		h.log.Error("delete group: lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete group."})
		return
	}

	if group.CreatedBy.Hex() != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Only the group creator can delete the group."})
		return
	}

	if err := h.store.DeleteMessagesByGroup(c.Request.Context(), groupID); err != nil {
		h.log.Error("delete group: messages cascade failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete group."})
		return
	}
	if err := h.store.DeleteMembershipsByGroup(c.Request.Context(), groupID); err != nil {
		h.log.Error("delete group: memberships cascade failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete group."})
		return
	}
	if err := h.store.DeleteGroup(c.Request.Context(), groupID); err != nil && !errors.Is(err, database.ErrNotFound) {
		h.log.Error("delete group failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete group."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Group deleted."})
}
