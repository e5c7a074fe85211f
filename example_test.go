package mindbuffer_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/mindbuffer"
	"github.com/aretw0/mindbuffer/pkg/flow"
	"github.com/aretw0/mindbuffer/pkg/generator"
)

// ExampleNew walks one rescue flow against the in-memory store and the
// offline generator.
func ExampleNew() {
	ctx := context.Background()
	coach, err := mindbuffer.New(
		mindbuffer.WithGeneratorOptions(generator.WithMockDelay(0)),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer coach.Close(ctx)

	id, f, err := coach.Sessions.Open(ctx, 80)
	if err != nil {
		log.Fatal(err)
	}

	for _, answer := range []string{"I missed the deadline", "I'm useless", "Tight chest"} {
		if err := f.Submit(ctx, answer); err != nil {
			log.Fatal(err)
		}
	}
	fmt.Println(f.Stage().Name(), f.ABC().A)

	if err := f.GenerateLenses(ctx); err != nil {
		log.Fatal(err)
	}
	lens := f.Stage().(flow.Lens)
	fmt.Println(lens.Name(), len(lens.Cards))

	if err := f.SelectLens(ctx, lens.Cards[0].ID); err != nil {
		log.Fatal(err)
	}
	action := f.Stage().(flow.Action)
	fmt.Println(action.Name(), len(action.Cards))

	if err := f.SelectAction(ctx, action.Cards[0].ID); err != nil {
		log.Fatal(err)
	}
	record, err := coach.Sessions.Complete(ctx, id)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(record.ThemeName, record.Completed)

	// Output:
	// CHAT I missed the deadline
	// LENS 3
	// ACTION 3
	// 关于“I mis...”的小风波 true
}
