package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/flowlua/scriptgraph/autosave"
	"github.com/flowlua/scriptgraph/editor"
	"github.com/flowlua/scriptgraph/memstore"
	"github.com/flowlua/scriptgraph/nodetype"
)

func main() {
	ctx := context.Background()

	reg := nodetype.Builtin()
	store := memstore.New()
	saver := autosave.New(store, 200*time.Millisecond, nil)
	defer saver.Close()

	// Opening a script with no persisted graph synthesizes one containing
	// only the entry node.
	sess, err := editor.Open(ctx, store, saver, reg, "hello-luau")
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	fmt.Println("session opened:")
	printJSON(sess.Graph())

	// ── Build a tiny script: 2 + 3 wired into an arithmetic node ──────
	a, _ := sess.AddNode("number", 100, 0)
	b, _ := sess.AddNode("number", 100, 80)
	sum, _ := sess.AddNode("arithmetic", 300, 40)

	if _, v, _ := sess.Connect(a.ID, "value", sum.ID, "a"); v.OK {
		fmt.Println("\nwired number → arithmetic.a")
	}
	if _, v, _ := sess.Connect(b.ID, "value", sum.ID, "b"); v.OK {
		fmt.Println("wired number → arithmetic.b")
	}

	// ── A boolean output can't feed a Number input ────────────────────
	flag, _ := sess.AddNode("boolean", 100, 160)
	if _, v, _ := sess.Connect(flag.ID, "value", sum.ID, "b"); !v.OK {
		fmt.Printf("boolean → arithmetic.b refused: %s\n", v.Reason)
	}

	// ── Switching the arithmetic node to expression mode prunes the
	//    operand edges, which no longer resolve ───────────────────────
	pruned, err := sess.SetNodeData(sum.ID, map[string]any{
		"mode":       nodetype.ModeExpression,
		"expression": "x * 2 + 1",
	})
	if err != nil {
		log.Fatalf("set data: %v", err)
	}
	fmt.Printf("\nexpression mode pruned %d edges\n", len(pruned))

	// ── Clone keeps data, drops edges ─────────────────────────────────
	clone, _ := sess.CloneNode(sum.ID)
	fmt.Printf("cloned arithmetic node: %s\n", clone.ID)

	// Closing flushes a final save; give the fire-and-forget write a
	// moment before reading back.
	sess.Close()
	time.Sleep(100 * time.Millisecond)

	g, err := store.LoadGraph(ctx, "hello-luau")
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	fmt.Println("\npersisted graph:")
	printJSON(g)
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
