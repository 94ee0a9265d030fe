package server

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// stateResponse is the pull payload: the stored document plus the
// server-assigned version the client compares against on later polls.
type stateResponse struct {
	Version int64           `json:"version"`
	State   json.RawMessage `json:"state"`
}

type statePushResponse struct {
	Version int64 `json:"version"`
}

// handleStatePull returns the caller's state document. A `since` query
// parameter makes unchanged polls cheap: when the stored version is not
// newer, the handler answers 304 without touching the document body.
func (s *Server) handleStatePull(c echo.Context) error {
	userID := c.Get("user_id").(string)

	since := int64(0)
	if v := c.QueryParam("since"); v != "" {
		since, _ = strconv.ParseInt(v, 10, 64)
	}

	var doc []byte
	var version int64
	err := s.db.QueryRow(`
		SELECT doc, version FROM states WHERE user_id = $1`,
		userID,
	).Scan(&doc, &version)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no state"})
	}
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	if version <= since {
		return c.NoContent(http.StatusNotModified)
	}

	c.Logger().Infof("State pull for user %s: version %d (since %d)", userID, version, since)

	return c.JSON(http.StatusOK, stateResponse{
		Version: version,
		State:   doc,
	})
}

// handleStatePush upserts the caller's full state document and assigns
// the next version.
func (s *Server) handleStatePush(c echo.Context) error {
	userID := c.Get("user_id").(string)

	body, err := io.ReadAll(c.Request().Body)
	if err != nil || !json.Valid(body) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	var version int64
	err = s.db.QueryRow(`
		INSERT INTO states (user_id, doc, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			doc = $2,
			version = states.version + 1,
			updated_at = NOW()
		RETURNING version`,
		userID, body,
	).Scan(&version)
	if err != nil {
		c.Logger().Error("db error:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	c.Logger().Infof("State push for user %s: version %d", userID, version)

	return c.JSON(http.StatusOK, statePushResponse{Version: version})
}
