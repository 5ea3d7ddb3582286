package mapper

import (
	"encoding/json"
	"strconv"

	"github.com/mkrogh/boldklub/internal/domain"
)

type rawUser struct {
	ID         int    `json:"id" validate:"required"`
	DocumentID string `json:"documentId"`
	Username   string `json:"username" validate:"required"`
	Email      string `json:"email" validate:"required"`
	Confirmed  bool   `json:"confirmed"`
	Blocked    bool   `json:"blocked"`
	Provider   string `json:"provider"`
	CreatedAt  string `json:"createdAt"`
}

// MapUser validates a raw auth-plugin user record. Unlike content documents,
// auth users predate document ids on some store versions, so documentId is
// optional and falls back to the numeric id's string form.
func MapUser(raw json.RawMessage) (domain.User, error) {
	wire, err := decode[rawUser](raw)
	if err != nil {
		return domain.User{}, err
	}

	id := wire.DocumentID
	if id == "" {
		id = strconv.Itoa(wire.ID)
	}

	return domain.User{
		ID:        id,
		RowID:     wire.ID,
		Username:  wire.Username,
		Email:     wire.Email,
		Confirmed: wire.Confirmed,
		Blocked:   wire.Blocked,
		Provider:  wire.Provider,
		CreatedAt: parseTime(wire.CreatedAt),
	}, nil
}

// SafeMapUser maps a collection element, logging and returning nil on a
// malformed record instead of failing the whole list.
func SafeMapUser(raw json.RawMessage) *domain.User {
	return safeMap(raw, "user", MapUser)
}
