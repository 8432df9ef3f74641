package domain

// 组件类型前缀
const (
	KindRoom          = "Room"
	KindNurseStation  = "Nurse Station"
	KindTreatmentRoom = "Treatment Room"
	KindCustomized    = "Customized"
)

// PaletteTemplate 组件面板中的模板条目（可重复拖出，拖出时分配新序号）
type PaletteTemplate struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Label  string `json:"label"`
	Title  string `json:"title"`
	NoBeds bool   `json:"noBeds"`
}

// paletteTemplates 初始面板内容，只通过 Templates() 对外提供副本
var paletteTemplates = []PaletteTemplate{
	{ID: "Room-1", Kind: KindRoom, Label: "Room (Max bed no. = 6)", Title: "Room No."},
	{ID: "Nurse Station-1", Kind: KindNurseStation, Label: "Nurse Station (No specific beds)", Title: "Nurse Station", NoBeds: true},
	{ID: "Treatment Room-1", Kind: KindTreatmentRoom, Label: "Treatment Room (No specific beds)", Title: "Treatment Room", NoBeds: true},
	{ID: "Customized-1", Kind: KindCustomized, Label: "Customized (No specific beds)", Title: "Customized", NoBeds: true},
}

// Templates 面板模板副本
func Templates() []PaletteTemplate {
	out := make([]PaletteTemplate, len(paletteTemplates))
	copy(out, paletteTemplates)
	return out
}

// PaletteIDs returns the template ids in display order.
func PaletteIDs() []string {
	ids := make([]string, 0, len(paletteTemplates))
	for _, t := range paletteTemplates {
		ids = append(ids, t.ID)
	}
	return ids
}

// TemplateForKind 按类型前缀找模板
func TemplateForKind(kind string) (PaletteTemplate, bool) {
	for _, t := range paletteTemplates {
		if t.Kind == kind {
			return t, true
		}
	}
	return PaletteTemplate{}, false
}

// EditLocked 护士站/治疗室卡片只能删除，不能编辑
func EditLocked(p Placement) bool {
	return p.NoBeds && (p.Title == KindNurseStation || p.Title == KindTreatmentRoom)
}
