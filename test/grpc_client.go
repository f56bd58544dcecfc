package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/wardenhq/warden-server/proto"
)

var (
	address   = flag.String("address", "localhost:50051", "data-plane gRPC address")
	agentID   = flag.String("agent-id", "test-agent-1", "agent id for this connection")
	samples   = flag.Int("samples", 3, "number of metrics samples to stream")
	delay     = flag.Duration("delay", 2*time.Second, "delay between samples")
	inventory = flag.Bool("inventory", true, "also upload a fake inventory")
)

func main() {
	flag.Parse()

	log.Printf("Connecting to data-plane server at %s", *address)

	conn, err := grpc.NewClient(*address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer conn.Close()

	client := proto.NewDataPlaneServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	streamMetrics(ctx, client)

	if *inventory {
		uploadInventory(ctx, client)
	}

	log.Println("Test client finished")
}

func streamMetrics(ctx context.Context, client proto.DataPlaneServiceClient) {
	stream, err := client.StreamMetrics(ctx)
	if err != nil {
		log.Fatalf("Failed to create metrics stream: %v", err)
	}

	log.Printf("Metrics stream created, agent_id=%s", *agentID)

	for i := 0; i < *samples; i++ {
		if i > 0 {
			time.Sleep(*delay)
		}

		msg := &proto.Metrics{
			AgentId:         *agentID,
			Timestamp:       time.Now().Unix(),
			CpuPercent:      12.5 + float64(i),
			MemoryPercent:   40.0,
			MemoryUsed:      strconv.FormatUint(8<<30, 10),
			MemoryAvailable: strconv.FormatUint(8<<30, 10),
			DiskPercent:     55.0,
			DiskUsed:        strconv.FormatUint(256<<30, 10),
			DiskTotal:       strconv.FormatUint(512<<30, 10),
			NetworkRxBytes:  "1048576",
			NetworkTxBytes:  "524288",
			ProcessCount:    142,
			Uptime:          "86400",
		}
		if err := stream.Send(msg); err != nil {
			log.Fatalf("Failed to send sample %d: %v", i+1, err)
		}
		log.Printf("Sent metrics sample %d/%d", i+1, *samples)
	}

	summary, err := stream.CloseAndRecv()
	if err != nil {
		log.Fatalf("Metrics stream close error: %v", err)
	}
	log.Printf("Metrics summary: success=%v received=%d", summary.Success, summary.ReceivedCount)
}

func uploadInventory(ctx context.Context, client proto.DataPlaneServiceClient) {
	resp, err := client.UploadInventory(ctx, &proto.InventoryData{
		AgentId: *agentID,
		SystemInfo: &proto.SystemInfo{
			Hostname:     fmt.Sprintf("%s-host", *agentID),
			Os:           "linux",
			OsVersion:    "6.8",
			Platform:     "debian",
			Architecture: "amd64",
			CpuModel:     "Test CPU",
			CpuCores:     8,
			CpuThreads:   16,
			TotalMemory:  strconv.FormatUint(16<<30, 10),
		},
		Software: []*proto.InstalledSoftware{
			{Name: "openssh-server", Version: "9.6", Publisher: "OpenBSD"},
		},
	})
	if err != nil {
		log.Fatalf("Inventory upload failed: %v", err)
	}
	if !resp.Success {
		log.Fatalf("Inventory rejected: %s", resp.Error)
	}
	log.Println("Inventory uploaded")
}
