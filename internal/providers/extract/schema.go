package extract

import "infographic/internal/providers/genai"

const (
	MinPoints = 4
	MaxPoints = 6
)

// ResponseSchema is the structure the model must answer with.
func ResponseSchema() *genai.Schema {
	str := func(desc string) *genai.Schema {
		return &genai.Schema{Type: "STRING", Description: desc}
	}
	return &genai.Schema{
		Type: "OBJECT",
		Properties: map[string]*genai.Schema{
			"topic":          str("Tiêu đề chính của infographic, ngắn gọn và ấn tượng."),
			"subtitle":       str("Tiêu đề phụ hoặc khẩu hiệu."),
			"targetAudience": str("Đối tượng học sinh, ví dụ THCS hoặc THPT."),
			"points": {
				Type:        "ARRAY",
				Description: "Từ 4 đến 6 bước hoặc ý chính. Với quy trình, bắt đầu tiêu đề bằng 'Bước 1:', 'Bước 2:'...",
				MinItems:    MinPoints,
				MaxItems:    MaxPoints,
				Items: &genai.Schema{
					Type: "OBJECT",
					Properties: map[string]*genai.Schema{
						"title":   str("Tiêu đề của ý, ví dụ 'Bước 1: Chuẩn bị'."),
						"content": str("Nội dung cô đọng, súc tích."),
						"icon":    str("Tên icon tiếng Anh: settings, edit, check, book, atom, brain, calculator, globe, history, leaf, microscope, music, pen-tool, rocket, scale, sun, trophy, user."),
					},
					Required: []string{"title", "content", "icon"},
				},
			},
			"summary": str("Lời kết hoặc thông điệp cốt lõi."),
			"colorPalette": {
				Type:        "OBJECT",
				Description: "Bảng màu hài hòa cho thiết kế.",
				Properties: map[string]*genai.Schema{
					"primary":    str("Màu chủ đạo (mã hex)."),
					"secondary":  str("Màu phụ trợ (mã hex)."),
					"background": str("Màu nền sáng (mã hex)."),
					"text":       str("Màu chữ tương phản tốt (mã hex)."),
					"accent":     str("Màu nhấn (mã hex)."),
				},
				Required: []string{"primary", "secondary", "background", "text", "accent"},
			},
		},
		Required: []string{"topic", "subtitle", "targetAudience", "points", "summary", "colorPalette"},
	}
}
