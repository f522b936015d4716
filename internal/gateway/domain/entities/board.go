package entities

import "fmt"

// BoardInfo - метаданные доски, получаемые по коду.
type BoardInfo struct {
	BoardCode   string `json:"boardCode"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	TotalPosts  int64  `json:"totalPosts"`
}

// PlaceholderBoardInfo - значения по умолчанию для доски code.
func PlaceholderBoardInfo(code string) BoardInfo {
	return BoardInfo{
		BoardCode:   code,
		DisplayName: "Board " + code,
		Description: fmt.Sprintf("Posts of board %s", code),
		TotalPosts:  0,
	}
}
