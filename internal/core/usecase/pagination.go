package usecase

import "addisnest-service/internal/core/domain"

// normalizePage приводит page/limit к допустимым значениям и возвращает offset
func normalizePage(page, limit, defaultLimit int) (int, int, int) {
	if page < 1 {
		page = domain.DefaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}
	return page, limit, (page - 1) * limit
}
