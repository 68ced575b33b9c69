package model

// Segment - поведенческий сегмент пользователя.
// Назначается внешним процессом сегментации, здесь только читается
type Segment string

const (
	SegmentLow    Segment = "Low"
	SegmentMedium Segment = "Medium"
	SegmentWhale  Segment = "Whale"
)

// ParseSegment - парсит строку из кэша в сегмент.
// Неизвестные значения считаются сегментом Low
func ParseSegment(s string) Segment {
	switch Segment(s) {
	case SegmentLow, SegmentMedium, SegmentWhale:
		return Segment(s)
	default:
		return SegmentLow
	}
}
