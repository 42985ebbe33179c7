package create_booking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/pkg/types"
)

// validateRequest валидирует запрос на создание бронирования
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.FacilityID <= 0 {
		return fmt.Errorf("%w: facilityID must be positive", ErrInvalidInput)
	}
	if req.CourtID <= 0 {
		return fmt.Errorf("%w: courtID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if len(req.Slots) == 0 {
		return fmt.Errorf("%w: at least one slot is required", ErrInvalidInput)
	}
	if req.TotalAmount <= 0 {
		return fmt.Errorf("%w: totalAmount must be positive", ErrInvalidInput)
	}
	return nil
}

// validateDateNotPast проверяет, что дата бронирования не в прошлом
// Сравнение по календарному дню: бронь на сегодня допустима
func validateDateNotPast(date, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())

	if day.Before(today) {
		return fmt.Errorf("%w: booking date %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}
	return nil
}

// normalizeSlots приводит входные слоты к каноничным часовым парам
// Поддерживаются два представления:
//   - голый час: "9" или "09" (endTime пустой)
//   - явная пара: startTime "09:00", endTime "10:00"
//
// После нормализации проверяются дубликаты, слоты сортируются по времени начала
func normalizeSlots(inputs []SlotInput) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for _, in := range inputs {
		slot, err := normalizeSlot(in)
		if err != nil {
			return nil, err
		}

		key := slot.StartTime.String()
		if _, ok := seen[key]; ok {
			return nil, fmt.Errorf("%w: duplicate slot %s", ErrInvalidSlot, key)
		}
		seen[key] = struct{}{}

		slots = append(slots, slot)
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	return slots, nil
}

// normalizeSlot приводит один слот к каноничной паре start/end
func normalizeSlot(in SlotInput) (domain.Slot, error) {
	raw := strings.TrimSpace(in.StartTime)
	if raw == "" {
		return domain.Slot{}, fmt.Errorf("%w: startTime is required", ErrInvalidSlot)
	}

	// Форма с голым часом: "9", "09"
	if !strings.Contains(raw, ":") {
		hour, err := strconv.Atoi(raw)
		if err != nil || hour < 0 || hour > 23 {
			return domain.Slot{}, fmt.Errorf("%w: invalid hour %q", ErrInvalidSlot, raw)
		}

		start := types.TimeString(fmt.Sprintf("%02d:00", hour))
		end, err := start.AddMinutes(domain.SlotDurationMinutes)
		if err != nil {
			return domain.Slot{}, fmt.Errorf("%w: hour %q has no valid end time", ErrInvalidSlot, raw)
		}

		return domain.Slot{StartTime: start, EndTime: end}, nil
	}

	// Явная пара start/end
	start := types.TimeString(raw)
	if err := start.Validate(); err != nil {
		return domain.Slot{}, fmt.Errorf("%w: invalid startTime %q", ErrInvalidSlot, raw)
	}

	startHour, err := start.Hour()
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: invalid startTime %q", ErrInvalidSlot, raw)
	}
	if start != types.TimeString(fmt.Sprintf("%02d:00", startHour)) {
		return domain.Slot{}, fmt.Errorf("%w: startTime %q must be on the hour", ErrInvalidSlot, raw)
	}

	expectedEnd, err := start.AddMinutes(domain.SlotDurationMinutes)
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: startTime %q has no valid end time", ErrInvalidSlot, raw)
	}

	rawEnd := strings.TrimSpace(in.EndTime)
	if rawEnd == "" {
		return domain.Slot{StartTime: start, EndTime: expectedEnd}, nil
	}

	end := types.TimeString(rawEnd)
	if err := end.Validate(); err != nil {
		return domain.Slot{}, fmt.Errorf("%w: invalid endTime %q", ErrInvalidSlot, rawEnd)
	}
	if end != expectedEnd {
		return domain.Slot{}, fmt.Errorf("%w: slot %s-%s must cover exactly one hour", ErrInvalidSlot, start, end)
	}

	return domain.Slot{StartTime: start, EndTime: end}, nil
}

// validateSlotsInWindow проверяет, что все слоты попадают в операционное окно корта
func validateSlotsInWindow(court *domain.Court, slots []domain.Slot) error {
	for _, slot := range slots {
		hour, err := slot.StartTime.Hour()
		if err != nil {
			return fmt.Errorf("%w: invalid startTime %s", ErrInvalidSlot, slot.StartTime)
		}
		if hour < court.OpenHour || hour >= court.CloseHour {
			return fmt.Errorf("%w: slot %s is outside %02d:00-%02d:00",
				ErrSlotOutsideWindow, slot.StartTime, court.OpenHour, court.CloseHour)
		}
	}
	return nil
}

// splitAmount раскладывает общую сумму поровну между n слотами
// Остаток от деления распределяется по одной минимальной единице на первые
// total%n слотов, так что сумма долей всегда равна total
func splitAmount(total int64, n int) []int64 {
	amounts := make([]int64, n)
	base := total / int64(n)
	remainder := total % int64(n)

	for i := range amounts {
		amounts[i] = base
		if int64(i) < remainder {
			amounts[i]++
		}
	}

	return amounts
}
