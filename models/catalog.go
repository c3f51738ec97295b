package models

// ChecklistItem là một ô checkbox có id ổn định
type ChecklistItem struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Phase là một nhóm checkbox của roadmap
type Phase struct {
	ID    string          `yaml:"id" json:"id"`
	Title string          `yaml:"title" json:"title"`
	Items []ChecklistItem `yaml:"items" json:"items"`
}

// Catalog mô tả danh sách daily và các phase của roadmap.
// Thứ tự trong catalog chính là vị trí trong mảng daily/roadmap của document.
type Catalog struct {
	Daily  []ChecklistItem `yaml:"daily" json:"daily"`
	Phases []Phase         `yaml:"phases" json:"phases"`
}

// RoadmapSize trả về tổng số checkbox roadmap
func (c *Catalog) RoadmapSize() int {
	n := 0
	for _, p := range c.Phases {
		n += len(p.Items)
	}
	return n
}

// PhaseByID tìm phase theo id
func (c *Catalog) PhaseByID(id string) (*Phase, bool) {
	for i := range c.Phases {
		if c.Phases[i].ID == id {
			return &c.Phases[i], true
		}
	}
	return nil, false
}
