package shell

// Banner is printed when an interactive session starts.
const Banner = `Sonnet Search
Type one or more words to find the sonnets containing all of them.
Type :help for commands, :quit to leave.`

// Help lists the commands understood by a session.
const Help = `Commands:
  :help               show this help
  :highlight on|off   turn highlighting of matches on or off
  :quit               leave the program

Anything else is a search query. Words are separated by whitespace and
matched case-insensitively anywhere in a title or line; a sonnet is listed
only if it contains every word.`

const (
	farewell       = "Bye."
	highlightUsage = "Usage: :highlight on|off"
	unknownCommand = "Unknown command. Type :help for commands."
)
