package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/optommarket/shopbot/internal/llm"
)

type scriptedClient struct {
	reply string
	err   error
}

func (c scriptedClient) Complete(context.Context, llm.Request) (string, error) {
	return c.reply, c.err
}

func TestExtractParsesNoisyJSONReply(t *testing.T) {
	reply := "Mana natija:\n```json\n{\"search_query\": \"televizor\", \"translated_keywords\": \"телевизор\", \"min_price\": null, \"max_price\": 5000000, \"category_hint\": \"Elektronika\", \"is_product_search\": true}\n```\nYordam kerakmi?"
	e := NewExtractor(scriptedClient{reply: reply}, nil, zerolog.Nop())

	got := e.Extract(context.Background(), "menga televizor kerak edi")
	if !got.IsProductQuery {
		t.Fatalf("IsProductQuery = false, want true")
	}
	if got.PrimaryKeyword != "televizor" {
		t.Fatalf("PrimaryKeyword = %q, want %q", got.PrimaryKeyword, "televizor")
	}
	if got.SecondaryKeyword != "телевизор" {
		t.Fatalf("SecondaryKeyword = %q, want translated keyword", got.SecondaryKeyword)
	}
	if got.MinPrice != nil {
		t.Fatalf("MinPrice = %v, want nil", *got.MinPrice)
	}
	if got.MaxPrice == nil || *got.MaxPrice != 5000000 {
		t.Fatalf("MaxPrice = %v, want 5000000", got.MaxPrice)
	}
	if got.CategoryHint != "Elektronika" {
		t.Fatalf("CategoryHint = %q", got.CategoryHint)
	}
}

func TestExtractFallsBackOnTransportError(t *testing.T) {
	e := NewExtractor(scriptedClient{err: errors.New("boom")}, nil, zerolog.Nop())

	short := e.Extract(context.Background(), "televizor")
	if !short.IsProductQuery || short.PrimaryKeyword != "televizor" {
		t.Fatalf("short fallback = %+v, want product query on utterance", short)
	}

	long := e.Extract(context.Background(), "Do'kon qayerda joylashgan bilsam bo'ladimi")
	if long.IsProductQuery {
		t.Fatalf("long fallback should not be a product query: %+v", long)
	}
}

func TestExtractFallsBackWhenNoBracesInReply(t *testing.T) {
	e := NewExtractor(scriptedClient{reply: "kechirasiz, tushunmadim"}, nil, zerolog.Nop())

	got := e.Extract(context.Background(), "muzlatgich narxi")
	if !got.IsProductQuery || got.PrimaryKeyword != "muzlatgich narxi" {
		t.Fatalf("fallback = %+v, want heuristic product query", got)
	}
}

func TestExtractFallsBackOnUndecodableJSON(t *testing.T) {
	e := NewExtractor(scriptedClient{reply: `{"search_query": ["not", "a", "string"]}`}, nil, zerolog.Nop())

	got := e.Extract(context.Background(), "bu juda uzun gap bo'lib mahsulot emas")
	if got.IsProductQuery {
		t.Fatalf("fallback for long utterance should be conversational: %+v", got)
	}
}

func TestHeuristicIntentWordBoundary(t *testing.T) {
	three := HeuristicIntent("kir yuvish mashinasi")
	if !three.IsProductQuery || three.PrimaryKeyword != "kir yuvish mashinasi" {
		t.Fatalf("3-word heuristic = %+v, want product query", three)
	}

	four := HeuristicIntent("kir yuvish mashinasi kerak")
	if four.IsProductQuery {
		t.Fatalf("4-word heuristic should be conversational: %+v", four)
	}
}
