package dto

import (
	"time"

	"github.com/thereayou/studnet/internal/models"
)

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Faculty     string `json:"faculty"`
	Year        int    `json:"year"`
	Course      string `json:"course"`
}

type GroupView struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Faculty     string    `json:"faculty"`
	Year        int       `json:"year"`
	Course      string    `json:"course"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewGroupView(g *models.Group) GroupView {
	return GroupView{
		ID:          g.ID.Hex(),
		Name:        g.Name,
		Faculty:     g.Faculty,
		Year:        g.Year,
		Course:      g.Course,
		Description: g.Description,
		CreatedBy:   g.CreatedBy.Hex(),
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}

// GroupSummaryView — строка списка групп с посчитанным членством
type GroupSummaryView struct {
	GroupView
	MemberCount int  `json:"member_count"`
	IsMember    bool `json:"is_member"`
}

func NewGroupSummaryView(g *models.Group, memberIDs []string, callerID string) GroupSummaryView {
	isMember := false
	for _, id := range memberIDs {
		if id == callerID {
			isMember = true
			break
		}
	}
	return GroupSummaryView{
		GroupView:   NewGroupView(g),
		MemberCount: len(memberIDs),
		IsMember:    isMember,
	}
}
