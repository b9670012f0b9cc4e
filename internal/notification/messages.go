package notification

import (
	"math/rand"
	"time"
)

// ReminderTopic selects which pool a reminder message comes from.
type ReminderTopic string

const (
	ReminderIncome  ReminderTopic = "income"
	ReminderExpense ReminderTopic = "expense"
	ReminderSavings ReminderTopic = "savings"
	ReminderGeneral ReminderTopic = "general"
)

var reminderMessages = map[ReminderTopic][]string{
	ReminderIncome: {
		"💰 Time to log today's income! Your future self will thank you.",
		"💵 Don't forget to add your income for today. Every rupee counts!",
		"📈 Track your earnings today - it's the first step to financial freedom!",
		"💎 Your income deserves to be recorded. Add it now!",
	},
	ReminderExpense: {
		"💸 Time to log today's expenses! Stay on top of your spending.",
		"🛒 Don't forget to add your expenses for today. Knowledge is power!",
		"📊 Track your spending today - awareness leads to better decisions!",
		"🎯 Log your expenses now and stay in control of your finances!",
	},
	ReminderSavings: {
		"🏦 Time to add your savings! Building wealth one day at a time.",
		"💰 Don't forget to log your savings for today. Small steps, big dreams!",
		"📈 Every rupee saved is a step closer to your goals!",
	},
	ReminderGeneral: {
		"📱 Hey! Don't forget to update your financial records today.",
		"💡 Quick reminder: Log your financial activities for today.",
		"🎯 Stay on track with your financial goals. Update your records now!",
		"💪 Consistency is key! Update your financial records today.",
	},
}

var funMessages = map[string][]string{
	"morning": {
		"Good morning! 🌅 Your wallet is calling - time to track those expenses!",
		"Rise and shine! ☀️ Don't let your money slip through your fingers today!",
		"Morning! 🌸 Your financial future is waiting for you to log today's activities!",
	},
	"afternoon": {
		"Afternoon check-in! 🌞 How's your spending looking today?",
		"Hey! 🌤️ Don't forget to log that lunch expense!",
		"Hi there! 🌸 Time for a quick financial check-in!",
	},
	"evening": {
		"Evening! 🌆 Time to wrap up your day with some financial tracking!",
		"Evening check-in! 🌇 How did your money behave today?",
		"Good evening! 🌅 Your financial diary is waiting for today's entry!",
	},
	"weekend": {
		"Weekend vibes! 🎉 But your expenses don't take weekends off!",
		"Happy weekend! 🌈 Time to catch up on your financial tracking!",
		"Hey! 🎈 Weekend expenses count too - don't forget to log them!",
	},
	"funny": {
		"Expenses are like calories - they add up whether you count them or not! 🍕",
		"Your budget is like a plant - it needs regular attention to grow! 🌱",
		"Money doesn't grow on trees, but it does grow when you track it! 🌳",
		"Budgeting is like dieting - easier when you track everything! 🥗",
	},
}

var achievementMessages = []string{
	"Congratulations! 🎉 You've been tracking expenses for a week!",
	"Amazing! 🏆 You're building a strong financial foundation!",
	"Well done! 🎊 Your financial discipline is paying off!",
	"Excellent! 🎯 Your money management skills are improving!",
}

// Reminder builds a daily-reminder payload for one topic.
func Reminder(topic ReminderTopic) Payload {
	pool, ok := reminderMessages[topic]
	if !ok {
		pool = reminderMessages[ReminderGeneral]
	}
	return Payload{
		Kind:  KindReminder,
		Title: "Daily Reminder 📝",
		Body:  pick(pool),
		Data: map[string]string{
			"type":  string(KindReminder),
			"topic": string(topic),
		},
		Icon:     "📝",
		Priority: PriorityNormal,
	}
}

// Fun builds a lighthearted nudge. The pool is chosen by time of day
// unless an explicit context names one.
func Fun(context string, at time.Time) Payload {
	pool := funMessages[context]
	if pool == nil {
		pool = funMessages[timeOfDayContext(at)]
	}
	return Payload{
		Kind:  KindFun,
		Title: "Hey there! 👋",
		Body:  pick(pool),
		Data: map[string]string{
			"type":    string(KindFun),
			"context": context,
		},
		Icon:     "👋",
		Priority: PriorityLow,
	}
}

// Achievement builds a milestone payload.
func Achievement(milestone string) Payload {
	return Payload{
		Kind:  KindAchievement,
		Title: "Achievement Unlocked! 🏆",
		Body:  pick(achievementMessages),
		Data: map[string]string{
			"type":      string(KindAchievement),
			"milestone": milestone,
		},
		Icon:     "🏆",
		Priority: PriorityNormal,
	}
}

func timeOfDayContext(at time.Time) string {
	if day := at.Weekday(); day == time.Saturday || day == time.Sunday {
		return "weekend"
	}
	switch hour := at.Hour(); {
	case hour < 12:
		return "morning"
	case hour < 18:
		return "afternoon"
	default:
		return "evening"
	}
}

func pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.Intn(len(pool))]
}
