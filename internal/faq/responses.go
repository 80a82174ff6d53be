// Tigana - Dried Fruit Storefront Core and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tigana

package faq

// Canned answers keyed by the exact normalized question.
var canned = map[string]Reply{
	"hello": {
		Message:      "Hello! Welcome to Aali Tigana! I'm here to help you discover the finest dried fruits. What can I assist you with today?",
		QuickReplies: []string{"Show me best sellers", "I need healthy snacks", "Tell me about shipping", "Help me choose"},
	},
	"hi": {
		Message:      "Hi there! I'm your Aali Tigana assistant. How can I help you find the perfect dried fruits?",
		QuickReplies: []string{"Browse products", "Special offers", "Nutritional info", "Shipping details"},
	},
	"show me best sellers": {
		Message:      "Our best sellers are absolutely amazing! 🌟 Premium Medjool Dates, Turkish Dried Figs, and our Trail Mix Deluxe are customer favorites. They're loved for their exceptional quality and natural sweetness!",
		QuickReplies: []string{"Tell me about dates", "What about figs?", "Trail mix info", "View all products"},
	},
	"best sellers": {
		Message:      "Here are our top-rated dried fruits: Premium Medjool Dates (★4.9), Turkish Dried Figs (★4.8), and Organic Turkish Apricots (★4.8). These are chosen by thousands of happy customers!",
		QuickReplies: []string{"Medjool dates info", "Turkish figs details", "Apricot benefits", "Add to cart help"},
	},
	"i need healthy snacks": {
		Message:      "Perfect choice! Our dried fruits are nature's candy - packed with fiber, potassium, and antioxidants. Dates provide natural energy, figs are great for digestion, and apricots are rich in vitamin A. All with no added sugars!",
		QuickReplies: []string{"Nutritional benefits", "Organic options", "Low sugar fruits", "Portion recommendations"},
	},
	"healthy snacks": {
		Message:      "Dried fruits are excellent healthy snacks! They provide natural sugars for energy, fiber for digestion, and essential minerals. Our organic options have no preservatives or additives - just pure, natural goodness!",
		QuickReplies: []string{"Organic products", "Calorie information", "Dietary restrictions", "Best for athletes"},
	},
	"tell me about shipping": {
		Message:      "We offer multiple shipping options: Standard (5-7 days, FREE on orders $50+), Express (2-3 days, $8.99), and Same-day delivery in select cities ($15.99). All orders are carefully packed to preserve freshness!",
		QuickReplies: []string{"Shipping costs", "Delivery areas", "Order tracking", "Packaging details"},
	},
	"shipping": {
		Message:      "Fast, reliable shipping is our priority! Free shipping on orders over $50, express options available, and we use special packaging to keep your dried fruits fresh during transit.",
		QuickReplies: []string{"Free shipping details", "Express delivery", "International shipping", "Package tracking"},
	},
	"product recommendations": {
		Message:      "I'd love to help you choose! What are you looking for? Sweet treats like dates and figs? Tart options like apricots? Or maybe a mixed variety for snacking? Tell me your preferences!",
		QuickReplies: []string{"Sweet options", "Tart fruits", "Mixed varieties", "Gift packages"},
	},
	"help me choose": {
		Message:      "Great! To give you the best recommendations, what's your preference? Are you looking for: energy-boosting snacks, dessert alternatives, baking ingredients, or just daily healthy snacking?",
		QuickReplies: []string{"Energy snacks", "Dessert alternatives", "Baking ingredients", "Daily snacking"},
	},
	"tell me about dates": {
		Message:      "Dates are nature's candy! Our Premium Medjool dates are large, soft, and incredibly sweet. They're packed with potassium, fiber, and natural sugars. Perfect for energy boosts, desserts, or just satisfying sweet cravings naturally!",
		QuickReplies: []string{"Medjool vs other dates", "Date recipes", "Nutritional facts", "How to store dates"},
	},
	"what about figs": {
		Message:      "Our Turkish dried figs are sun-dried to perfection! They have a honey-like sweetness with subtle floral notes. Rich in calcium, fiber, and antioxidants. Great for snacking, cheese boards, or adding to yogurt!",
		QuickReplies: []string{"Fig varieties", "Fig health benefits", "Serving suggestions", "Fig vs date comparison"},
	},
	"track my order": {
		Message:      "To track your order, you can use your order number on our Track Order page, or check your email for tracking information. Orders typically ship within 1-2 business days!",
		QuickReplies: []string{"Order tracking page", "Shipping timeframes", "Order status help", "Contact support"},
	},
	"special offers": {
		Message:      "We have amazing deals right now! New customers get 20% off their first order, and we have seasonal discounts on bulk purchases. Plus, free shipping on orders over $50!",
		QuickReplies: []string{"New customer discount", "Bulk order discounts", "Current promotions", "How to apply codes"},
	},
	"payment options": {
		Message:      "We accept all major credit cards, PayPal, and cash on delivery (COD) in select areas. All transactions are secure and encrypted for your safety. No stored payment information without your consent!",
		QuickReplies: []string{"Credit cards accepted", "PayPal checkout", "Cash on delivery", "Payment security"},
	},
	"default": defaultReply,
}

var defaultReply = Reply{
	Message:      "I'm here to help with any questions about our premium dried fruits! You can ask me about products, shipping, nutritional information, or anything else related to Aali Tigana.",
	QuickReplies: []string{"Product catalog", "Shipping info", "Health benefits", "Customer service"},
}

// Answers that only keyword or intent routing can reach.
var (
	productsReply = Reply{
		Message:      "We have an amazing selection of premium dried fruits! Dates, figs, apricots, raisins, and mixed varieties. Each category offers different flavors and nutritional benefits. What interests you most?",
		QuickReplies: []string{"Show dates", "Show figs", "Show apricots", "Show all products"},
	}
	helpReply = Reply{
		Message:      "I'm happy to help! I can assist with product information, nutritional benefits, shipping details, order tracking, payment options, and special offers. What would you like to know?",
		QuickReplies: []string{"Product info", "Nutritional facts", "Shipping help", "Order support"},
	}
	organicReply = Reply{
		Message:      "We have excellent organic options! Our Organic Turkish Apricots are certified organic with no sulfur or preservatives. Many of our products are naturally organic and free from artificial additives.",
		QuickReplies: []string{"Organic products", "Natural vs organic", "Certification info", "Health benefits"},
	}
	priceReply = Reply{
		Message:      "Our prices reflect the premium quality of our dried fruits. We offer competitive pricing with frequent promotions. Plus, free shipping on orders over $50 makes it even more affordable!",
		QuickReplies: []string{"Current prices", "Free shipping details", "Bulk discounts", "Special offers"},
	}
	qualityReply = Reply{
		Message:      "Quality is our top priority! We source directly from premium growers, use optimal drying methods, and package for maximum freshness. Our products arrive as fresh as the day they were processed!",
		QuickReplies: []string{"Quality standards", "Sourcing info", "Freshness guarantee", "Storage tips"},
	}
)

// topics lists keyword groups in match priority order.
var topics = []struct {
	route    Route
	keywords []string
}{
	{RouteGreetings, []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}},
	{RouteProducts, []string{"product", "fruits", "dried", "dates", "figs", "apricots", "raisins", "mixed", "organic"}},
	{RouteHealth, []string{"healthy", "nutrition", "benefits", "calories", "sugar", "organic", "natural"}},
	{RouteShipping, []string{"shipping", "delivery", "ship", "deliver", "track", "order", "fast"}},
	{RoutePayment, []string{"payment", "pay", "credit", "card", "paypal", "cash", "cod", "secure"}},
	{RouteOffers, []string{"discount", "offer", "deal", "promotion", "sale", "coupon", "code"}},
	{RouteHelp, []string{"help", "support", "assistance", "question", "problem", "issue"}},
}
