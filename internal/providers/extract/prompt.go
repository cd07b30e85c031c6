package extract

import (
	"fmt"
	"strings"
)

// SystemInstruction frames the model as a careful Vietnamese education writer.
const SystemInstruction = "Bạn là trợ lý AI chuyên biên soạn nội dung giáo dục chất lượng cao. " +
	"Bạn giữ nguyên chính tả tiếng Việt, không bỏ dấu, không phiên âm và không chuẩn hóa ký tự."

// BuildInstruction returns the task prompt sent ahead of the lesson material.
// hint lists dominant colours of the reference images and may be empty.
func BuildInstruction(hint []string) string {
	var b strings.Builder
	b.WriteString("Bạn là chuyên gia thiết kế giáo dục và sư phạm. Hãy phân tích tài liệu bài học bên dưới ")
	b.WriteString("(văn bản và/hoặc hình ảnh) để dựng cấu trúc cho một infographic dạy học dạng quy trình hoặc sơ đồ tư duy.\n")
	b.WriteString("Yêu cầu:\n")
	b.WriteString("1. Giữ nguyên văn toàn bộ dấu thanh, dấu câu và chính tả tiếng Việt (ă, â, ê, ô, ơ, ư, đ...). Không phiên âm, không bỏ dấu.\n")
	fmt.Fprintf(&b, "2. Chia nội dung thành %d đến %d bước hoặc ý rõ ràng, thật cô đọng.\n", MinPoints, MaxPoints)
	b.WriteString("3. Văn phong phù hợp với thẻ thông tin (card-based).\n")
	b.WriteString("4. Chọn icon phù hợp cho từng bước.\n")
	b.WriteString("5. Chỉ trả về JSON đúng theo schema.\n")
	if len(hint) > 0 {
		fmt.Fprintf(&b, "Gợi ý màu lấy từ hình ảnh tham khảo: %s.\n", strings.Join(hint, ", "))
	}
	return b.String()
}

// schemaOutline is the schema rendered inline for backends without native
// response schemas.
const schemaOutline = `{"topic":string,"subtitle":string,"targetAudience":string,` +
	`"points":[{"title":string,"content":string,"icon":string}] (4 to 6 items),` +
	`"summary":string,"colorPalette":{"primary":hex,"secondary":hex,"background":hex,"text":hex,"accent":hex}}`
