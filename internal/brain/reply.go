package brain

import "fmt"

// UnavailableReply is returned when the LLM cannot be used.
const UnavailableReply = "Sorry, I can't do that."

// Reply renders a short confirmation for an executed intent. Failures are
// reported as such instead of a generic acknowledgement.
func Reply(intent Intent, res Result) string {
	desc := intent.Description()

	if !res.OK {
		switch res.Error {
		case ErrMsgDescriptionRequired:
			return "I need a description to add a task."
		case ErrMsgNotFound:
			if desc == "" {
				return fmt.Sprintf("I need a description to %s a task.", verb(intent.Function))
			}
			return fmt.Sprintf("I couldn't find a task matching “%s”.", desc)
		default:
			return UnavailableReply
		}
	}

	switch intent.Function {
	case FuncAddTask:
		return fmt.Sprintf("Added “%s”.", desc)
	case FuncCompleteTask:
		return fmt.Sprintf("Marked “%s” as done.", desc)
	case FuncDeleteTask:
		return fmt.Sprintf("Deleted “%s”.", desc)
	case FuncViewTasks:
		return fmt.Sprintf("You have %d task(s).", len(res.Tasks))
	}
	return "OK"
}

func verb(fn Function) string {
	switch fn {
	case FuncCompleteTask:
		return "complete"
	case FuncDeleteTask:
		return "delete"
	}
	return "find"
}
