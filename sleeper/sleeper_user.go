package sleeper

import "github.com/pdag/league-page/model"

type sleeperUser struct {
	UserID      string         `json:"user_id"`
	Username    string         `json:"username"`
	DisplayName string         `json:"display_name"`
	Avatar      string         `json:"avatar"`
	Metadata    map[string]any `json:"metadata"`
}

func (u *sleeperUser) toSleeperUser() *model.SleeperUser {
	metadata := u.Metadata
	if metadata == nil {
		metadata = make(map[string]any)
	}
	return &model.SleeperUser{
		UserID:      u.UserID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Avatar:      u.Avatar,
		Metadata:    metadata,
	}
}
