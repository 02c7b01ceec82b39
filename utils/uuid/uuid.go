package uuid

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	guuid "github.com/google/uuid"
)

// SnowNode 雪花算法节点，用于生成记录id
type SnowNode struct {
	node *snowflake.Node
}

// NewNode nodeId 取值范围 0~1023
func NewNode(nodeId int64) *SnowNode {
	node, err := snowflake.NewNode(nodeId)
	if err != nil {
		panic(err)
	}
	return &SnowNode{node: node}
}

func (s *SnowNode) GenSnowID() int64 {
	return s.node.Generate().Int64()
}

func (s *SnowNode) GenSnowStr() string {
	return s.node.Generate().String()
}

// GenUUID16 生成16位的随机字符串
func GenUUID16() string {
	return strings.ReplaceAll(guuid.NewString(), "-", "")[:16]
}

// IsUUID 校验后端服务的用户id
func IsUUID(s string) bool {
	_, err := guuid.Parse(s)
	return err == nil
}
