package tracker

import (
	"encoding/json"

	"github.com/julianstephens/timesheet/internal/worklog"
)

// User is the account behind the current token.
type User struct {
	ID    string `json:"id"`
	Login string `json:"login"`
	Name  string `json:"name"`
}

// UpdateParams changes the duration and, when Comment is set, the comment of
// a worklog.
type UpdateParams struct {
	IssueID   string
	WorklogID int64
	Duration  string
	Comment   *string
}

type userDTO struct {
	UID     json.Number `json:"uid"`
	Login   string      `json:"login"`
	Display string      `json:"display"`
}

type refDTO struct {
	ID      string `json:"id"`
	Key     string `json:"key"`
	Display string `json:"display"`
}

type worklogDTO struct {
	ID        int64  `json:"id"`
	Issue     refDTO `json:"issue"`
	CreatedBy struct {
		ID      string `json:"id"`
		Display string `json:"display"`
	} `json:"createdBy"`
	Start    string `json:"start"`
	Duration string `json:"duration"`
	Comment  string `json:"comment"`
}

type searchRequest struct {
	CreatedBy string      `json:"createdBy"`
	Start     searchRange `json:"start"`
}

type searchRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type updateRequest struct {
	Duration string  `json:"duration"`
	Comment  *string `json:"comment,omitempty"`
}

func (d userDTO) toUser() User {
	return User{ID: d.UID.String(), Login: d.Login, Name: d.Display}
}

func (d worklogDTO) toWorklog() worklog.Worklog {
	return worklog.Worklog{
		ID:       d.ID,
		Start:    d.Start,
		Duration: d.Duration,
		Issue: worklog.Issue{
			ID:      d.Issue.ID,
			Key:     d.Issue.Key,
			Display: d.Issue.Display,
			Comment: d.Comment,
		},
	}
}
