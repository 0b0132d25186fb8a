package utils

import (
	"errors"

	"space/internal/models"
)

// ErrCommentNotFound 目标评论不在森林中
var ErrCommentNotFound = errors.New("comment not found")

// AddReply 在森林中找到 parentID 对应的评论，把 reply 追加到它的 Replies 末尾，返回新的森林。
// 命中路径上的节点都会被复制，不在路径上的节点原样共享，原森林中的节点不会被修改。
// 按先序遍历取第一个匹配的节点。未命中时返回原森林和 ErrCommentNotFound。
func AddReply(forest []models.Comment, parentID string, reply models.Comment) ([]models.Comment, error) {
	out, ok := insertReply(forest, parentID, reply)
	if !ok {
		return forest, ErrCommentNotFound
	}
	return out, nil
}

func insertReply(nodes []models.Comment, parentID string, reply models.Comment) ([]models.Comment, bool) {
	for i := range nodes {
		node := nodes[i]
		if node.ID == parentID {
			replies := make([]models.Comment, len(node.Replies), len(node.Replies)+1)
			copy(replies, node.Replies)
			node.Replies = append(replies, reply)
			return replaceAt(nodes, i, node), true
		}
		if len(node.Replies) == 0 {
			continue
		}
		if replies, ok := insertReply(node.Replies, parentID, reply); ok {
			node.Replies = replies
			return replaceAt(nodes, i, node), true
		}
	}
	return nil, false
}

// replaceAt 复制 nodes 并替换第 i 个元素
func replaceAt(nodes []models.Comment, i int, node models.Comment) []models.Comment {
	out := make([]models.Comment, len(nodes))
	copy(out, nodes)
	out[i] = node
	return out
}

// AddTopLevelComment 把评论追加到顶层末尾，返回新切片
func AddTopLevelComment(forest []models.Comment, c models.Comment) []models.Comment {
	out := make([]models.Comment, len(forest), len(forest)+1)
	copy(out, forest)
	return append(out, c)
}

// ToggleCommentLike 切换 userID 对某条评论的点赞状态，只改动该节点的 Likes。
// 返回新森林以及切换后是否为已点赞状态。
func ToggleCommentLike(forest []models.Comment, commentID, userID string) ([]models.Comment, bool, error) {
	var liked bool
	out, ok := updateNode(forest, commentID, func(node *models.Comment) {
		likedBy := make([]string, 0, len(node.LikedBy)+1)
		for _, id := range node.LikedBy {
			if id != userID {
				likedBy = append(likedBy, id)
			}
		}
		if len(likedBy) == len(node.LikedBy) {
			likedBy = append(likedBy, userID)
			node.Likes++
			liked = true
		} else {
			node.Likes--
		}
		node.LikedBy = likedBy
	})
	if !ok {
		return forest, false, ErrCommentNotFound
	}
	return out, liked, nil
}

// updateNode 复制命中路径并对目标节点的副本执行 fn
func updateNode(nodes []models.Comment, id string, fn func(*models.Comment)) ([]models.Comment, bool) {
	for i := range nodes {
		node := nodes[i]
		if node.ID == id {
			fn(&node)
			return replaceAt(nodes, i, node), true
		}
		if len(node.Replies) == 0 {
			continue
		}
		if replies, ok := updateNode(node.Replies, id, fn); ok {
			node.Replies = replies
			return replaceAt(nodes, i, node), true
		}
	}
	return nil, false
}

// FindComment 先序查找评论
func FindComment(forest []models.Comment, id string) (*models.Comment, bool) {
	for i := range forest {
		if forest[i].ID == id {
			return &forest[i], true
		}
		if c, ok := FindComment(forest[i].Replies, id); ok {
			return c, true
		}
	}
	return nil, false
}

// CountComments 统计森林中的节点总数
func CountComments(forest []models.Comment) int {
	n := 0
	for i := range forest {
		n += 1 + CountComments(forest[i].Replies)
	}
	return n
}
