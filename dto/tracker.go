package dto

// CheckItemView là một checkbox khi render
type CheckItemView struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// PhaseView là một phase của roadmap kèm tiến độ
type PhaseView struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Expanded    bool            `json:"expanded"`
	Items       []CheckItemView `json:"items"`
	Checked     int             `json:"checked"`
	Total       int             `json:"total"`
	Percent     int             `json:"percent"`
	PercentText string          `json:"percentText"`
	FillWidth   string          `json:"fillWidth"`
}

// Progress là tiến độ tổng của roadmap
type Progress struct {
	Checked int    `json:"checked"`
	Total   int    `json:"total"`
	Percent int    `json:"percent"`
	Text    string `json:"text"`
}

// UserView là thông tin hiển thị ở header
type UserView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// TrackerView là toàn bộ trạng thái màn hình tracker
type TrackerView struct {
	User       UserView        `json:"user"`
	Daily      []CheckItemView `json:"daily"`
	Phases     []PhaseView     `json:"phases"`
	Streak     int             `json:"streak"`
	StreakText string          `json:"streakText"`
	Total      Progress        `json:"total"`
	LastLogin  string          `json:"lastLogin"`
	Stale      bool            `json:"stale"`
}

// CheckStateInput là trạng thái đầy đủ của mọi checkbox, key theo id
type CheckStateInput struct {
	Daily   map[string]bool `json:"daily" binding:"required"`
	Roadmap map[string]bool `json:"roadmap" binding:"required"`
}

// ToggleResponse là kết quả khi bấm vào header của phase
type ToggleResponse struct {
	PhaseID  string `json:"phaseId"`
	Expanded bool   `json:"expanded"`
}
