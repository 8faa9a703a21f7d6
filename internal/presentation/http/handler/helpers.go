package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aydinlift/partsdesk-api/pkg/apperror"
)

const dateLayout = "2006-01-02"

// parseDateRange reads start_date/end_date query params (inclusive calendar
// days) and returns a half-open [start, end) timestamp interval: one day is
// added to the parsed end date. Defaults to the last 30 days.
func parseDateRange(c *gin.Context) (start, end time.Time, err error) {
	now := time.Now()
	start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, -30)
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, 1)

	if raw := c.Query("start_date"); raw != "" {
		parsed, perr := time.ParseInLocation(dateLayout, raw, time.Local)
		if perr != nil {
			return start, end, apperror.NewBadRequestError("invalid start_date, expected YYYY-MM-DD")
		}
		start = parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, perr := time.ParseInLocation(dateLayout, raw, time.Local)
		if perr != nil {
			return start, end, apperror.NewBadRequestError("invalid end_date, expected YYYY-MM-DD")
		}
		end = parsed.AddDate(0, 0, 1)
	}
	if end.Before(start) {
		return start, end, apperror.NewBadRequestError("end_date must not be before start_date")
	}
	return start, end, nil
}
