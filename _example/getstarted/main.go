// Copyright 2023 individual contributors. All rights reserved.
// Use of this source code is governed by a Zero-Clause BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"time"

	"github.com/0x5a17ed/colite"
	"github.com/0x5a17ed/colite/dispatcher/eventloop"
)

func fetchGreeting(ctx *colite.Ctx, name string) string {
	colite.Sleep(ctx, 10*time.Millisecond)
	return "hello, " + name
}

func asyncMain(ctx *colite.Ctx) error {
	greeting := colite.Launch(ctx.Dispatcher(), func(ctx *colite.Ctx) string {
		return fetchGreeting(ctx, "colite")
	})

	msg, err := colite.Await(ctx, greeting)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func main() {
	loop := eventloop.New()

	var runErr error
	colite.Launch(loop, func(ctx *colite.Ctx) struct{} {
		runErr = asyncMain(ctx)
		return struct{}{}
	})

	loop.Run()

	if runErr != nil {
		panic(runErr)
	}
}
