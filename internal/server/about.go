package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type aboutSection struct {
	Heading string   `json:"heading"`
	Body    string   `json:"body,omitempty"`
	Items   []string `json:"items,omitempty"`
}

type aboutPage struct {
	Title    string         `json:"title"`
	Sections []aboutSection `json:"sections"`
}

var about = aboutPage{
	Title: "About AI-Powered Storytelling Assistant",
	Sections: []aboutSection{
		{
			Heading: "Project Overview",
			Body: "This AI-powered storytelling assistant helps users craft compelling personal and professional stories " +
				"using AI-based narrative structures and creative enhancements. The assistant guides users through various " +
				"stages of story creation, allowing them to choose story origins, use cases, timeframes, focus areas, and " +
				"narrative structures. The system offers an intuitive interface, customization options, professional " +
				"storyteller booking, and the ability to save and retrieve stories.",
		},
		{
			Heading: "Key Features",
			Items: []string{
				"Story Origins: Choose between personal anecdotes or well-known tales.",
				"Story Use Cases: Select from various use cases like personal branding, company origin, product launch, and more.",
				"Time Frame and Focus: Specify the period of life and focus on specific leadership behaviors or qualities.",
				"Customizable Length: Options for short, medium, or long stories.",
				"Diverse Story Types: Choose from founding stories, vision stories, personal stories, and more.",
				"Narrative Structures: Use different storytelling frameworks like Story-Spine, Hero's Journey, or In Media Res.",
				"Creative Enhancements: AI-powered suggestions for metaphors, quotes, and comparisons.",
				"Story Management: Save, retrieve, and edit your stories.",
				"Professional Storyteller Booking: Book live sessions with experienced storytellers.",
			},
		},
		{
			Heading: "How It Works",
			Items: []string{
				"Log in or create an account.",
				"Choose your story parameters on the main page.",
				"Generate your story using AI assistance.",
				"Edit and refine your story as needed.",
				"Save or download your completed story.",
				"Optionally, book a session with a professional storyteller for further enhancement.",
			},
			Body: "This storytelling assistant simplifies the process of crafting stories with AI-driven guidance, creative " +
				"options, and professional enhancement tools. It's ideal for both personal and professional storytelling needs.",
		},
	},
}

func getAbout(c *gin.Context) {
	c.JSON(http.StatusOK, about)
}
