package get_master_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SlottaService/internal/domain"
	"github.com/m04kA/SMC-SlottaService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день, from/to - диапазон; date имеет приоритет
func ToServiceRequest(masterID int64, query url.Values) (*models.GetMasterBookingsRequest, error) {
	req := &models.GetMasterBookingsRequest{
		MasterID:        masterID,
		IncludeInactive: false, // По умолчанию только активные
	}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		if fromStr := query.Get("from"); fromStr != "" {
			from, err := time.Parse(domain.DateFormat, fromStr)
			if err != nil {
				return nil, err
			}
			req.StartDate = &from
		}
		if toStr := query.Get("to"); toStr != "" {
			to, err := time.Parse(domain.DateFormat, toStr)
			if err != nil {
				return nil, err
			}
			req.EndDate = &to
		}
	}

	if includeInactiveStr := query.Get("includeInactive"); includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid limit value: %w", err)
		}
		req.Limit = limit
	}

	return req, nil
}
