package normalize

import "memoboard/internal/gateway/domain/entities"

var (
	boardNameKeys  = []string{"brNm", "br_nm", "displayName", "name"}
	boardDescKeys  = []string{"description", "br_desc", "desc"}
	boardTotalKeys = []string{"totalPosts", "total_posts", "postCount"}
)

// BoardInfo приводит метаданные доски к канонической форме.
// Пропущенные поля берутся из заглушки для code.
func BoardInfo(raw Object, code string) entities.BoardInfo {
	info := entities.PlaceholderBoardInfo(code)

	if name := pickString(raw, boardNameKeys...); name != "" {
		info.DisplayName = name
	}
	if desc := pickString(raw, boardDescKeys...); desc != "" {
		info.Description = desc
	}
	if total, ok := pickInt(raw, boardTotalKeys...); ok && total >= 0 {
		info.TotalPosts = total
	}
	return info
}
