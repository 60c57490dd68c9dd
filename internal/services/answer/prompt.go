package answer

import "fmt"

// contextInstruction builds the system message embedding retrieved context.
// The wording varies with the question type so analytical questions get an
// explanation framing and factual ones a direct-answer framing.
func contextInstruction(passage string, analytical bool) string {
	if analytical {
		return fmt.Sprintf(`Dựa trên thông tin sau:

%s

Hãy phân tích và giải thích chi tiết khi trả lời câu hỏi của người dùng.`, passage)
	}
	return fmt.Sprintf(`Dựa trên thông tin sau:

%s

Hãy trả lời ngắn gọn và chính xác câu hỏi của người dùng.`, passage)
}
