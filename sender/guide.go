package sender

import (
	"fmt"
	"io"
	"strings"
)

// PrintSetupGuide writes the steps needed to create a bot and find the chat id
func PrintSetupGuide(w io.Writer, program string) {
	rule := strings.Repeat("=", 60)

	_, _ = fmt.Fprintf(w, `%[1]s
TELEGRAM BOT SETUP GUIDE
%[1]s

1. Create a bot with @BotFather in Telegram
   - Send /newbot
   - Choose a name for the bot
   - Receive the token (looks like: 1234567890:ABCdefGhIJKlmNoPQRsTUVwxyZ)

2. Add the bot to a private chat
   - Create a group in Telegram
   - Add the bot to the group as an administrator

3. Find the chat_id:
   - Send any message to the chat
   - Open: https://api.telegram.org/bot<YOUR_TOKEN>/getUpdates
   - Look for 'chat': {'id': -1001234567890}

4. Run:
   %[2]s --token <TOKEN> --chat <CHAT_ID> --file message.txt
%[1]s
`, rule, program)
}
