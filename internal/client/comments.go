package client

import (
	"context"
	"fmt"

	"github.com/Macrojordan/mission-control-kanban/internal/model"
)

// CommentInput is the add-comment request body.
type CommentInput struct {
	TaskID  int64  `json:"task_id"`
	Author  string `json:"author"`
	Content string `json:"content"`
}

// ListComments fetches the comments of one task.
func (e *Engine) ListComments(ctx context.Context, taskID int64) ([]model.Comment, error) {
	return call(e,
		func() ([]model.Comment, error) {
			var comments []model.Comment
			if err := e.remote.request(ctx, "GET", fmt.Sprintf("/api/comments/task/%d", taskID), requestOptions{}, &comments); err != nil {
				return nil, err
			}
			return comments, nil
		},
		func() ([]model.Comment, error) {
			var comments []model.Comment
			for _, c := range e.local.Comments() {
				if c.TaskID == taskID {
					comments = append(comments, c)
				}
			}
			return comments, nil
		},
	)
}

// AddComment adds a comment, logging a commented activity entry offline just
// as the server does.
func (e *Engine) AddComment(ctx context.Context, in CommentInput) (*model.Comment, error) {
	return call(e,
		func() (*model.Comment, error) {
			var comment model.Comment
			if err := e.remote.request(ctx, "POST", "/api/comments", requestOptions{body: in}, &comment); err != nil {
				return nil, err
			}
			e.local.SetComments(append(e.local.Comments(), comment))
			return &comment, nil
		},
		func() (*model.Comment, error) {
			now := e.now()
			comments := e.local.Comments()
			comment := model.Comment{
				ID:        int64(len(comments) + 1),
				TaskID:    in.TaskID,
				Author:    model.Actor(in.Author),
				Content:   in.Content,
				CreatedAt: now,
			}
			e.local.SetComments(append(comments, comment))
			e.local.LogActivity(in.TaskID, model.ActionCommented, model.CommentedMessage(), in.Author, now)
			return &comment, nil
		},
	)
}

func (e *Engine) removeCommentMirror(id int64) {
	comments := e.local.Comments()
	for i := range comments {
		if comments[i].ID == id {
			e.local.SetComments(append(comments[:i], comments[i+1:]...))
			return
		}
	}
}

// DeleteComment removes a comment.
func (e *Engine) DeleteComment(ctx context.Context, id int64) error {
	_, err := call(e,
		func() (struct{}, error) {
			err := e.remote.request(ctx, "DELETE", fmt.Sprintf("/api/comments/%d", id), requestOptions{}, nil)
			if err != nil {
				return struct{}{}, err
			}
			e.removeCommentMirror(id)
			return struct{}{}, nil
		},
		func() (struct{}, error) {
			e.removeCommentMirror(id)
			return struct{}{}, nil
		},
	)
	return err
}
