package models

import "time"

// Team is a club team. Members join with the six character join code.
type Team struct {
	ID        string    `json:"team_id" gorm:"primaryKey;size:450"`
	OwnerID   string    `json:"owner_id" gorm:"size:450;not null"`
	Name      string    `json:"team_name" gorm:"size:200"`
	Sport     string    `json:"team_sport" gorm:"size:50"`
	City      string    `json:"team_city" gorm:"size:40"`
	State     string    `json:"team_state" gorm:"size:2"`
	JoinCode  string    `json:"team_join_code" gorm:"size:6;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

type TeamLookupResponse struct {
	TeamID   string `json:"team_id"`
	Name     string `json:"team_name"`
	JoinCode string `json:"team_join_code"`
}
