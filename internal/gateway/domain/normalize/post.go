package normalize

import "memoboard/internal/gateway/domain/entities"

var (
	postIDKeys       = []string{"br_pid", "seq", "sequenceId", "id", "postId"}
	postBoardKeys    = []string{"br_cd", "brCd", "boardCode"}
	postTitleKeys    = []string{"br_title", "title", "postTitle"}
	postContentKeys  = []string{"br_content", "content"}
	postAuthorKeys   = []string{"br_reg_id", "author", "createdBy"}
	postCreatedKeys  = []string{"br_reg_dt", "createdAt", "created_at", "date"}
	postViewsKeys    = []string{"br_hit", "viewCount", "views"}
	postCommentsKeys = []string{"commentCount", "comment_count"}
)

// Post приводит объект записи к канонической форме.
// boardCode подставляется, если ответ не содержит код доски.
func Post(raw Object, boardCode string) entities.Post {
	seq, _ := pickInt(raw, postIDKeys...)
	views, _ := pickInt(raw, postViewsKeys...)
	comments, _ := pickInt(raw, postCommentsKeys...)

	code := pickString(raw, postBoardKeys...)
	if code == "" {
		code = boardCode
	}

	return entities.Post{
		SequenceID:   seq,
		BoardCode:    code,
		Title:        pickString(raw, postTitleKeys...),
		Content:      pickString(raw, postContentKeys...),
		Author:       pickString(raw, postAuthorKeys...),
		CreatedAt:    pickString(raw, postCreatedKeys...),
		ViewCount:    views,
		CommentCount: comments,
	}
}

// Posts нормализует массив записей.
func Posts(items []any, boardCode string) []entities.Post {
	out := make([]entities.Post, 0, len(items))
	for _, item := range items {
		if o, ok := AsObject(item); ok {
			out = append(out, Post(o, boardCode))
		}
	}
	return out
}

// PostWriteRequest - тело POST /write.
type PostWriteRequest struct {
	BrCd      string `json:"br_cd"`
	BrTitle   string `json:"br_title"`
	BrContent string `json:"br_content"`
	BrRegID   string `json:"br_reg_id"`
}

// PostUpdateRequest - тело PUT /update/{seq}.
type PostUpdateRequest struct {
	BrTitle   string `json:"br_title"`
	BrContent string `json:"br_content"`
}

// PostPayload отображает поля формы в поля backend.
func PostPayload(d entities.PostDraft) PostWriteRequest {
	return PostWriteRequest{
		BrCd:      d.BoardCode,
		BrTitle:   d.Title,
		BrContent: d.Content,
		BrRegID:   d.Author,
	}
}

// PostUpdatePayload отображает изменяемые поля. Автор и доска не передаются.
func PostUpdatePayload(u entities.PostUpdate) PostUpdateRequest {
	return PostUpdateRequest{BrTitle: u.Title, BrContent: u.Content}
}
