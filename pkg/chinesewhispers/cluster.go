package chinesewhispers

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// sentinelNode marks the end-of-input cluster placed on the queue after all
// workers have finished. No real base node is negative.
const sentinelNode = -1

// Member is a single cluster member: a neighbor of the base node together
// with the base node's edge weight to it in the distributed graph.
type Member struct {
	Node   int32
	Weight float32
}

// Cluster is one induced sense of a base token: the subset of its ego
// network that settled on a common label.
type Cluster struct {
	Node    int32
	Sense   int32
	Members []Member
}

// WriteTo encodes the cluster in the cluster-file record layout: base node,
// sense id and member count followed by (node, weight) pairs, all as
// big-endian 4-byte groups for compatibility with JVM typed-data readers.
func (c *Cluster) WriteTo(w io.Writer) error {
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:4], uint32(c.Node))
	binary.BigEndian.PutUint32(buf[4:8], uint32(c.Sense))
	if _, err := w.Write(buf[:]); err != nil {
		return fmt.Errorf("failed to write cluster header: %w", err)
	}
	binary.BigEndian.PutUint32(buf[0:4], uint32(len(c.Members)))
	if _, err := w.Write(buf[0:4]); err != nil {
		return fmt.Errorf("failed to write cluster header: %w", err)
	}
	for _, member := range c.Members {
		binary.BigEndian.PutUint32(buf[0:4], uint32(member.Node))
		binary.BigEndian.PutUint32(buf[4:8], math.Float32bits(member.Weight))
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("failed to write cluster member: %w", err)
		}
	}
	return nil
}

// ReadClusters parses a cluster file back into memory. Bridge tooling for
// downstream consumers (sense-vector pooling, inspection); note the cluster
// file is big-endian while edge files are little-endian.
func ReadClusters(path string) ([]Cluster, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cluster file: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	var clusters []Cluster
	var header [12]byte
	for {
		if _, err := io.ReadFull(r, header[:]); err != nil {
			if err == io.EOF {
				return clusters, nil
			}
			return nil, fmt.Errorf("failed to read cluster record: %w", err)
		}
		cluster := Cluster{
			Node:  int32(binary.BigEndian.Uint32(header[0:4])),
			Sense: int32(binary.BigEndian.Uint32(header[4:8])),
		}
		count := int32(binary.BigEndian.Uint32(header[8:12]))
		if count < 0 {
			return nil, fmt.Errorf("invalid cluster member count %d", count)
		}
		cluster.Members = make([]Member, count)
		var entry [8]byte
		for i := range cluster.Members {
			if _, err := io.ReadFull(r, entry[:]); err != nil {
				return nil, fmt.Errorf("failed to read cluster member: %w", err)
			}
			cluster.Members[i] = Member{
				Node:   int32(binary.BigEndian.Uint32(entry[0:4])),
				Weight: math.Float32frombits(binary.BigEndian.Uint32(entry[4:8])),
			}
		}
		clusters = append(clusters, cluster)
	}
}
