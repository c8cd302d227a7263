// Package notify sends direct messages to a person through a chat bot.
//
// Two channels are supported: Telegram (recipient is a chat ID) and Discord
// (recipient is a user ID). Bot tokens are read from the telegram and discord
// sections of the script's config file. A message may carry one file.
package notify
