package user

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
)

// SnowflakeHandles derives handles from snowflake ids, unique across nodes
type SnowflakeHandles struct {
	node *snowflake.Node
}

// NewSnowflakeHandles creates a generator for the given node id (0..1023)
func NewSnowflakeHandles(nodeID int64) (*SnowflakeHandles, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake node: %w", err)
	}
	return &SnowflakeHandles{node: node}, nil
}

// Next returns a short base36 handle
func (g *SnowflakeHandles) Next() string {
	return g.node.Generate().Base36()
}
