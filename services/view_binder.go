package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"tracker/dto"
	"tracker/errors"
	"tracker/models"
)

// ViewBinder ánh xạ giữa tracker document và các checkbox trên màn hình.
// Vị trí trong mảng daily/roadmap lấy theo thứ tự của catalog, client chỉ gửi id.
type ViewBinder struct {
	catalog *models.Catalog
}

func NewViewBinder(catalog *models.Catalog) *ViewBinder {
	return &ViewBinder{catalog: catalog}
}

func (b *ViewBinder) Catalog() *models.Catalog {
	return b.catalog
}

// Bind dựng view từ document, expanded là các phase đang mở
func (b *ViewBinder) Bind(doc *models.TrackerDocument, user dto.UserView, expanded map[string]bool) dto.TrackerView {
	view := dto.TrackerView{
		User:   user,
		Daily:  make([]dto.CheckItemView, 0, len(b.catalog.Daily)),
		Phases: make([]dto.PhaseView, 0, len(b.catalog.Phases)),
	}

	var daily, roadmap []bool
	if doc != nil {
		daily, roadmap = doc.Daily, doc.Roadmap
		view.Streak = doc.Streak
		view.LastLogin = doc.LastLogin
	}
	view.StreakText = strconv.Itoa(view.Streak)

	for i, item := range b.catalog.Daily {
		view.Daily = append(view.Daily, dto.CheckItemView{
			ID:      item.ID,
			Label:   item.Label,
			Checked: at(daily, i),
		})
	}

	pos := 0
	for _, phase := range b.catalog.Phases {
		pv := dto.PhaseView{
			ID:       phase.ID,
			Title:    phase.Title,
			Expanded: expanded[phase.ID],
			Items:    make([]dto.CheckItemView, 0, len(phase.Items)),
		}
		for _, item := range phase.Items {
			pv.Items = append(pv.Items, dto.CheckItemView{
				ID:      item.ID,
				Label:   item.Label,
				Checked: at(roadmap, pos),
			})
			pos++
		}
		view.Phases = append(view.Phases, pv)
	}

	view.Total = UpdateVisuals(view.Phases)
	return view
}

// Collect chuyển trạng thái checkbox (key theo id) thành hai mảng theo vị trí.
// Id không có trong payload coi như chưa tick, id lạ thì báo lỗi.
func (b *ViewBinder) Collect(input dto.CheckStateInput) (daily, roadmap []bool, err error) {
	daily = make([]bool, len(b.catalog.Daily))
	known := make(map[string]bool, len(b.catalog.Daily))
	for i, item := range b.catalog.Daily {
		daily[i] = input.Daily[item.ID]
		known[item.ID] = true
	}
	if err := rejectUnknown(input.Daily, known, "daily"); err != nil {
		return nil, nil, err
	}

	roadmap = make([]bool, 0, b.catalog.RoadmapSize())
	known = make(map[string]bool, b.catalog.RoadmapSize())
	for _, phase := range b.catalog.Phases {
		for _, item := range phase.Items {
			roadmap = append(roadmap, input.Roadmap[item.ID])
			known[item.ID] = true
		}
	}
	if err := rejectUnknown(input.Roadmap, known, "roadmap"); err != nil {
		return nil, nil, err
	}

	return daily, roadmap, nil
}

func rejectUnknown(state map[string]bool, known map[string]bool, group string) error {
	var unknown []string
	for id := range state {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return errors.NewAppError(errors.ErrCodeUnknownItem,
		fmt.Sprintf("Mục %s không tồn tại: %v", group, unknown), errors.ErrInvalidInput)
}

// UpdateVisuals tính phần trăm cho từng phase và trả về tiến độ tổng
func UpdateVisuals(phases []dto.PhaseView) dto.Progress {
	var total dto.Progress
	for i := range phases {
		p := &phases[i]
		p.Checked, p.Total = 0, len(p.Items)
		for _, item := range p.Items {
			if item.Checked {
				p.Checked++
			}
		}
		p.Percent = Percent(p.Checked, p.Total)
		p.PercentText = strconv.Itoa(p.Percent) + "%"
		p.FillWidth = p.PercentText

		total.Checked += p.Checked
		total.Total += p.Total
	}
	total.Percent = Percent(total.Checked, total.Total)
	total.Text = strconv.Itoa(total.Percent) + "%"
	return total
}

// Percent làm tròn 100*checked/total, total bằng 0 thì trả về 0
func Percent(checked, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(checked) / float64(total)))
}

// Expand chuẩn hóa danh sách phase đang mở thành map, bỏ id không có trong catalog
func (b *ViewBinder) Expand(ids []string) map[string]bool {
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := b.catalog.PhaseByID(id); ok {
			out[id] = true
		}
	}
	return out
}

// HasPhase kiểm tra phase có trong catalog không
func (b *ViewBinder) HasPhase(id string) error {
	if _, ok := b.catalog.PhaseByID(id); !ok {
		return errors.NewAppError(errors.ErrCodeUnknownPhase, "Phase không tồn tại: "+id, errors.ErrInvalidInput)
	}
	return nil
}

func at(values []bool, i int) bool {
	return i < len(values) && values[i]
}
