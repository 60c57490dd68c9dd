package intent

import (
	"fmt"
)

// groundedPrompt asks the extractive backend to classify a query using a
// retrieved passage as anchor. An extractive model grounded in real text is
// cheaper and more deterministic than a generative call, so this runs first.
func groundedPrompt(passage, query string) string {
	return fmt.Sprintf(`Dựa trên thông tin sau:
%s

Hãy phân tích ý định của câu hỏi: "%s"

Phân loại thành một trong hai loại:
1. INFORMATION_RETRIEVAL: Người dùng muốn tìm kiếm dữ liệu cụ thể.
2. QUESTION_ANSWERING: Người dùng đang đặt câu hỏi cần giải thích hoặc phân tích.

Trả về JSON với định dạng:
{
  "intent_type": "INFORMATION_RETRIEVAL hoặc QUESTION_ANSWERING",
  "confidence_score": số từ 0.0 đến 1.0,
  "parameters": {
    "search_keywords": ["từ khóa1", "từ khóa2"],
    "entities": ["thực thể1", "thực thể2"],
    "question_type": "loại câu hỏi (nếu có)"
  }
}`, passage, query)
}

// classificationPrompt is the fixed-format instruction prompt for generative
// classification: the two intent types, the expected JSON schema and two
// worked examples, followed by the query.
func classificationPrompt(query string) string {
	return fmt.Sprintf(`SYSTEM:
Bạn là hệ thống phân tích truy vấn tiếng Việt. Nhiệm vụ của bạn là xác định loại câu, thời gian và tham số truy vấn.

Phân loại truy vấn thành một trong hai loại sau:
1. INFORMATION_RETRIEVAL (Truy Xuất Thông Tin): Người dùng muốn tìm kiếm dữ liệu cụ thể.
2. QUESTION_ANSWERING (Hỏi Đáp): Người dùng đang đặt câu hỏi cần giải thích hoặc phân tích.

Dựa trên phân tích của bạn, hãy trả về kết quả dưới dạng JSON với định dạng sau:
{
  "intent_type": "INFORMATION_RETRIEVAL hoặc QUESTION_ANSWERING",
  "confidence_score": số từ 0.0 đến 1.0,
  "time_info": {
    "from_date": "dd/MM/yyyy",
    "to_date": "dd/MM/yyyy",
    "time_type": "specific/range/none",
    "quarter": "Q1/Q2/Q3/Q4",
    "year": "YYYY"
  },
  "parameters": {
    "search_keywords": ["từ khóa1", "từ khóa2"],
    "filters": ["điều kiện1", "điều kiện2"],
    "question_type": "loại câu hỏi (what/why/how...)",
    "entities": ["thực thể1", "thực thể2"],
    "context": "ngữ cảnh nếu có"
  }
}

Hãy phân tích dựa trên các đặc điểm:
- Cấu trúc ngữ pháp của câu
- Từ nghi vấn hoặc từ chỉ lệnh
- Các thực thể được đề cập
- Yêu cầu ẩn hoặc rõ ràng của người dùng

Dưới đây là một số ví dụ để hướng dẫn phân loại của bạn:

Ví dụ 1:
Truy vấn: "Tìm kiếm những laptop dưới 15 triệu có card đồ họa NVIDIA"
Kết quả:
{
  "intent_type": "INFORMATION_RETRIEVAL",
  "confidence_score": 0.96,
  "time_info": {
    "time_type": "none"
  },
  "parameters": {
    "search_keywords": ["laptop", "card đồ họa", "NVIDIA"],
    "filters": ["giá < 15000000"],
    "entities": ["laptop", "NVIDIA"]
  }
}

Ví dụ 2:
Truy vấn: "Tại sao MacBook Pro lại có hiệu suất pin tốt hơn so với các laptop Windows?"
Kết quả:
{
  "intent_type": "QUESTION_ANSWERING",
  "confidence_score": 0.92,
  "time_info": {
    "time_type": "none"
  },
  "parameters": {
    "question_type": "why",
    "entities": ["MacBook Pro", "laptop Windows", "hiệu suất pin"],
    "context": "so sánh hiệu suất giữa hai loại thiết bị"
  }
}

CHÚ Ý QUAN TRỌNG: Vui lòng trả về JSON thuần túy, KHÔNG được thêm markdown hoặc code block. Chỉ trả về một đối tượng JSON hợp lệ.

USER:
%s`, query)
}
