// tracker_sim 模拟手部追踪端：连接游戏的 --tracker 地址，持续发送挥刀轨迹
//
// 用法:
//
//	go run . --tracker :8787                      # 启动游戏
//	go run ./cmd/tracker_sim --url ws://127.0.0.1:8787/tracker
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/gonewx/slicehero/pkg/tracker"
	"github.com/gorilla/websocket"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	url     = flag.String("url", "ws://127.0.0.1:8787"+tracker.Path, "游戏追踪服务地址")
	rate    = flag.Int("rate", 30, "每秒发送帧数（真实追踪端通常低于游戏帧率）")
	warmup  = flag.Duration("warmup", time.Second, "发送位置前模拟模型加载的时间")
	dropout = flag.Int("dropout", 0, "每 N 帧模拟一次丢手（0 表示不丢）")
)

func main() {
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "tracker_sim: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, *url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect %s: %w", *url, err)
	}
	defer conn.Close()
	log.Printf("[TrackerSim] Connected to %s", *url)

	if err := send(conn, tracker.Frame{Type: tracker.FrameStatus, Message: "LOADING HAND MODEL"}); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(*warmup):
	}

	ticker := time.NewTicker(time.Second / time.Duration(max(*rate, 1)))
	defer ticker.Stop()
	for frame := 1; ; frame++ {
		select {
		case <-ctx.Done():
			// 正常关闭，游戏端会显示断开提示
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case <-ticker.C:
		}
		f := sweepFrame(frame, *rate)
		if *dropout > 0 && frame%*dropout == 0 {
			f.Lost = true
		}
		if err := send(conn, f); err != nil {
			return err
		}
		if *verbose && frame%*rate == 0 {
			fmt.Printf("frame %d: (%.3f, %.3f)\n", frame, f.X, f.Y)
		}
	}
}

// sweepFrame 归一化坐标下的横向挥刀轨迹，约每秒往返 1.5 次
func sweepFrame(frame, rate int) tracker.Frame {
	t := float64(frame) / float64(max(rate, 1))
	return tracker.Frame{
		Type:       tracker.FramePointer,
		X:          0.5 + 0.42*math.Sin(t*2*math.Pi*0.75),
		Y:          0.45 + 0.2*math.Sin(t*2*math.Pi*0.2),
		Normalized: true,
	}
}

func send(conn *websocket.Conn, f tracker.Frame) error {
	data, err := tracker.EncodeFrame(f)
	if err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return fmt.Errorf("failed to send frame: %w", err)
	}
	return nil
}
