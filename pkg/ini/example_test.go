package ini_test

import (
	"errors"
	"fmt"
	"os"

	"github.com/shapestone/shape-ini/pkg/ini"
)

func ExampleParse() {
	doc, err := ini.Parse("; settings\n[server]\nport = 80   ; default\n")
	if err != nil {
		panic(err)
	}

	port, _ := doc.Get("server", "port ")
	fmt.Printf("%q\n", port)
	// Output:
	// "80   ; default"
}

func ExampleDocument_Set() {
	doc, err := ini.Parse("[hoge]\n ; test\nfuga = piyo\n")
	if err != nil {
		panic(err)
	}

	doc.Set("hoge", "fuga ", "mama")
	doc.Set("hoge", "mono", "mama")
	doc.Set("java", "wawa", "poyo")

	fmt.Print(doc)
	// Output:
	// [hoge]
	//  ; test
	// fuga = mama
	// mono=mama
	// [java]
	// wawa=poyo
}

func ExampleDocument_ToObject() {
	doc, _ := ini.Parse(";test\n[hoge]\n ;  exam\nfoo=bar\n ;  java\nfuga=piyo\n")

	obj := doc.ToObject()
	fmt.Println(obj["hoge"]["foo"], obj["hoge"]["fuga"])
	// Output:
	// bar piyo
}

func ExampleValidate() {
	err := ini.Validate("[server]\n=80\n")

	var perr *ini.ParseError
	if errors.As(err, &perr) {
		fmt.Println(perr.Line, perr.Column)
		fmt.Println(err)
	}
	// Output:
	// 2 1
	// ini: line 2, column 1: unexpected '=', expected key, section header, comment or empty line
}

func ExampleNewBuilder() {
	doc, err := ini.NewBuilder().
		Comment("generated").
		Section("server").
		Set("host", "localhost").
		Set("port", "80").
		Build()
	if err != nil {
		panic(err)
	}

	doc.WriteTo(os.Stdout)
	// Output:
	// ; generated
	// [server]
	// host=localhost
	// port=80
}

func ExampleMarshal() {
	type Server struct {
		Host string `ini:"host"`
		Port string `ini:"port"`
	}
	cfg := struct {
		Server Server `ini:"server"`
	}{Server{Host: "localhost", Port: "80"}}

	data, err := ini.Marshal(cfg)
	if err != nil {
		panic(err)
	}
	fmt.Print(string(data))
	// Output:
	// [server]
	// host=localhost
	// port=80
}
