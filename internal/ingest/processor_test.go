package ingest

import (
	"strings"
	"testing"
)

func TestProcessor_Extract(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		want     []struct{ question, answer string }
	}{
		{
			name:     "q and a markers",
			filename: "acme-corp.txt",
			content: "Q: What database does the platform use?\n" +
				"A: The platform runs on PostgreSQL with streaming replication.\n" +
				"Q: How is customer data encrypted at rest?\n" +
				"A: All volumes use AES-256 encryption managed by the cloud provider.\n",
			want: []struct{ question, answer string }{
				{"What database does the platform use?", "The platform runs on PostgreSQL with streaming replication."},
				{"How is customer data encrypted at rest?", "All volumes use AES-256 encryption managed by the cloud provider."},
			},
		},
		{
			name:     "question and answer markers",
			filename: "rfp.txt",
			content: "Question: What is the standard delivery time?\n" +
				"Answer: Standard delivery is four weeks from contract signature.\n",
			want: []struct{ question, answer string }{
				{"What is the standard delivery time?", "Standard delivery is four weeks from contract signature."},
			},
		},
		{
			name:     "german markers",
			filename: "ausschreibung.txt",
			content: "Frage: Wie lange dauert die Implementierung?\n" +
				"Antwort: Die Implementierung dauert in der Regel sechs Wochen.\n" +
				"Frage: Welche Schulungen sind enthalten?\n" +
				"Antwort: Zwei Schulungstage für Administratoren sind im Preis enthalten.\n",
			want: []struct{ question, answer string }{
				{"Wie lange dauert die Implementierung?", "Die Implementierung dauert in der Regel sechs Wochen."},
				{"Welche Schulungen sind enthalten?", "Zwei Schulungstage für Administratoren sind im Preis enthalten."},
			},
		},
		{
			name:     "numbered with answers",
			filename: "list.txt",
			content: "1. Describe your backup strategy in detail.\n" +
				"Answer: Nightly full backups with hourly incremental snapshots.\n" +
				"2. Describe your disaster recovery plan.\n" +
				"Answer: Failover to a secondary region within four hours.\n",
			want: []struct{ question, answer string }{
				{"Describe your backup strategy in detail.", "Nightly full backups with hourly incremental snapshots."},
				{"Describe your disaster recovery plan.", "Failover to a secondary region within four hours."},
			},
		},
		{
			name:     "multi-line answer",
			filename: "notes.txt",
			content: "Q: What support levels are offered?\n" +
				"A: We offer three support tiers.\n" +
				"Premium includes a 24/7 hotline.\n" +
				"Q: Is there an onboarding program available?\n" +
				"A: Yes, onboarding takes two weeks and is included.\n",
			want: []struct{ question, answer string }{
				{"What support levels are offered?", "We offer three support tiers.\nPremium includes a 24/7 hotline."},
				{"Is there an onboarding program available?", "Yes, onboarding takes two weeks and is included."},
			},
		},
		{
			name:     "too short fragments dropped",
			filename: "short.txt",
			content:  "Q: Why?\nA: Because.\n",
			want:     nil,
		},
		{
			name:     "no markers",
			filename: "prose.txt",
			content:  "This document contains no structured question and answer content at all.",
			want:     nil,
		},
	}

	p := NewProcessor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := p.Extract(tt.filename, []byte(tt.content))

			if len(entries) != len(tt.want) {
				t.Fatalf("Extract() returned %d entries, want %d", len(entries), len(tt.want))
			}
			for i, want := range tt.want {
				if entries[i].Question != want.question {
					t.Errorf("entry %d question = %q, want %q", i, entries[i].Question, want.question)
				}
				if entries[i].Answer != want.answer {
					t.Errorf("entry %d answer = %q, want %q", i, entries[i].Answer, want.answer)
				}
				if entries[i].ID == "" {
					t.Errorf("entry %d has empty ID", i)
				}
			}
		})
	}
}

func TestProcessor_Extract_Markdown(t *testing.T) {
	content := "# FAQ\n\n" +
		"**Q:** What integrations does the API support?\n\n" +
		"**A:** REST and webhook integrations are supported out of the box.\n"

	p := NewProcessor()
	entries := p.Extract("faq.md", []byte(content))

	if len(entries) != 1 {
		t.Fatalf("Extract() returned %d entries, want 1", len(entries))
	}
	if entries[0].Question != "What integrations does the API support?" {
		t.Errorf("question = %q", entries[0].Question)
	}
	if !strings.Contains(entries[0].Answer, "REST and webhook integrations") {
		t.Errorf("answer = %q", entries[0].Answer)
	}
	if entries[0].Client != "faq" {
		t.Errorf("client = %q, want faq", entries[0].Client)
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		question string
		want     string
	}{
		{"What database technology do you use?", "technical"},
		{"How is authentication handled?", "security"},
		{"What is the license cost per user?", "pricing"},
		{"When can you deliver the solution?", "timeline"},
		{"Wie lange dauert die Implementierung?", "timeline"},
		{"What maintenance is included?", "support"},
		{"What are the contract terms?", "legal"},
		{"Tell me about your company.", "general"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			if got := Categorize(tt.question); got != tt.want {
				t.Errorf("Categorize(%q) = %q, want %q", tt.question, got, tt.want)
			}
		})
	}
}
