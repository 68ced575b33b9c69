package segment

import (
	"arcade_backend/internal/config"
	"arcade_backend/internal/model"
)

// Policy - чистое отображение сегмента пользователя в корректировки
// вероятностей и house edge. Состояния не имеет, все значения из конфигурации
type Policy struct {
	cfg config.SegmentConfig
}

func NewPolicy(cfg config.SegmentConfig) *Policy {
	return &Policy{cfg: cfg}
}

// WinProbAdjust - прибавка к вероятности выигрыша в слоте.
// Для неизвестного сегмента корректировки нет
func (p *Policy) WinProbAdjust(seg model.Segment) float64 {
	if v, ok := p.cfg.WinProbAdjust()[seg]; ok {
		return v
	}
	return 0
}

// HouseEdge - доля, на которую урезается выигрышная выплата.
// Для неизвестного сегмента действует значение по умолчанию
func (p *Policy) HouseEdge(seg model.Segment) float64 {
	if v, ok := p.cfg.HouseEdge()[seg]; ok {
		return v
	}
	return p.cfg.DefaultHouseEdge()
}
