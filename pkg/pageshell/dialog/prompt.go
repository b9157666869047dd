package dialog

// Choice is the button that dismissed a Prompt.
type Choice int

const (
	ChoiceNone      Choice = iota // Dismissed without pressing a button (back, close)
	ChoicePrimary                 // Primary button (Ok, Yes)
	ChoiceSecondary               // Secondary button (No, Cancel)
)

func (c Choice) String() string {
	switch c {
	case ChoicePrimary:
		return "primary"
	case ChoiceSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Confirmation is the outcome of a yes/no prompt.
type Confirmation int

const (
	Denied Confirmation = iota
	Confirmed
)

func (c Confirmation) String() string {
	if c == Confirmed {
		return "confirmed"
	}
	return "denied"
}

// Prompt is the dialog content handed to the Presenter. The queue never
// looks inside it.
type Prompt struct {
	Title           string
	Content         string
	PrimaryButton   string // Empty means the localized "Ok"
	SecondaryButton string // Empty hides the button
	DefaultButton   Choice // Button focused when the prompt opens
}

// Labeler resolves button label message IDs. locale.Localizer implements it.
type Labeler interface {
	String(id string) string
}

// Message IDs for the stock button labels.
const (
	LabelOk  = "Ok"
	LabelYes = "Yes"
	LabelNo  = "No"
)

// Prompter builds stock prompts and funnels them through one Queue, so
// alerts and confirmations raised from anywhere appear one at a time.
type Prompter struct {
	queue  *Queue[Prompt, Choice]
	labels Labeler
}

// NewPrompter creates a Prompter on top of queue.
func NewPrompter(queue *Queue[Prompt, Choice], labels Labeler) *Prompter {
	return &Prompter{queue: queue, labels: labels}
}

// Queue returns the underlying queue.
func (p *Prompter) Queue() *Queue[Prompt, Choice] {
	return p.queue
}

// Show enqueues a caller-built prompt, filling in the primary label if it is
// missing.
func (p *Prompter) Show(prompt Prompt) *Future[Choice] {
	if prompt.PrimaryButton == "" {
		prompt.PrimaryButton = p.labels.String(LabelOk)
	}
	return p.queue.Enqueue(prompt)
}

// Alert shows a message with a single Ok button.
func (p *Prompter) Alert(title, content string) *Future[Choice] {
	return p.Show(Prompt{
		Title:         title,
		Content:       content,
		DefaultButton: ChoicePrimary,
	})
}

// Confirm asks a yes/no question. No is focused by default; anything but
// the Yes button counts as Denied.
func (p *Prompter) Confirm(title, text string) *Future[Confirmation] {
	choice := p.Show(Prompt{
		Title:           title,
		Content:         text,
		PrimaryButton:   p.labels.String(LabelYes),
		SecondaryButton: p.labels.String(LabelNo),
		DefaultButton:   ChoiceSecondary,
	})

	return Map(choice, func(c Choice) Confirmation {
		if c == ChoicePrimary {
			return Confirmed
		}
		return Denied
	})
}
